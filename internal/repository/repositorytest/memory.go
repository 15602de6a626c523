// Package repositorytest provides an in-memory EmployeeGateway for tests.
package repositorytest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/deppfellow/employees/internal/model"
	"github.com/deppfellow/employees/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

var _ repository.EmployeeGateway = (*Memory)(nil)

// Memory stores employees in a map and reports NOT NULL violations the way
// PostgreSQL does. Setting Err makes every call fail with it.
type Memory struct {
	mu     sync.Mutex
	rows   map[int32]model.Employee
	nextID int32

	Err error
}

func NewMemory(seed ...model.Employee) *Memory {
	m := &Memory{rows: make(map[int32]model.Employee)}
	for _, e := range seed {
		m.rows[e.ID] = e
		if e.ID > m.nextID {
			m.nextID = e.ID
		}
	}
	return m
}

func (m *Memory) List(_ context.Context) ([]model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	employees := make([]model.Employee, 0, len(m.rows))
	for _, e := range m.rows {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].ID < employees[j].ID })

	return employees, nil
}

func (m *Memory) Get(_ context.Context, id int32) (*model.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	e, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Memory) Create(_ context.Context, form model.EmployeeForm) (int32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}

	args := form.InsertArgs()
	for i, column := range model.Columns {
		if args[i] == nil {
			return 0, notNullViolation(column)
		}
	}

	m.nextID++
	m.rows[m.nextID] = form.Apply(model.Employee{ID: m.nextID})

	return m.nextID, nil
}

func (m *Memory) Update(_ context.Context, id int32, form model.EmployeeForm) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	if !form.HasChanges() {
		return 0, repository.ErrNoChanges
	}

	e, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	m.rows[id] = form.Apply(e)

	return 1, nil
}

func (m *Memory) Delete(_ context.Context, id int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}

	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)

	return 1, nil
}

func notNullViolation(column string) *pgconn.PgError {
	return &pgconn.PgError{
		Severity:   "ERROR",
		Code:       "23502",
		Message:    fmt.Sprintf(`null value in column "%s" of relation "employees" violates not-null constraint`, column),
		TableName:  "employees",
		ColumnName: column,
	}
}
