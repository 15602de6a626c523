package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/employees/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// ErrNoChanges is returned by Update when the form has no writable field.
var ErrNoChanges = errors.New("no fields to update")

// EmployeeGateway is the persistence contract for employees.
//
// Get returns (nil, nil) when no row matches. Update and Delete report the
// number of matched rows; zero is not an error.
type EmployeeGateway interface {
	List(ctx context.Context) ([]model.Employee, error)
	Get(ctx context.Context, id int32) (*model.Employee, error)
	Create(ctx context.Context, form model.EmployeeForm) (int32, error)
	Update(ctx context.Context, id int32, form model.EmployeeForm) (int64, error)
	Delete(ctx context.Context, id int32) (int64, error)
}

const (
	listEmployeesSQL  = `SELECT id, fname, lname, age, title FROM employees`
	getEmployeeSQL    = `SELECT id, fname, lname, age, title FROM employees WHERE id = $1`
	insertEmployeeSQL = `INSERT INTO employees (fname, lname, age, title) VALUES ($1, $2, $3, $4) RETURNING id`
	deleteEmployeeSQL = `DELETE FROM employees WHERE id = $1`
)

// EmployeeRepository implements EmployeeGateway with explicit parameterized
// statements against the employees table.
type EmployeeRepository struct {
	db Querier
}

func NewEmployeeRepository(db Querier) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.db.Query(ctx, listEmployeesSQL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list employees")
	}
	defer rows.Close()

	employees, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Employee])
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect employees")
	}

	return employees, nil
}

func (r *EmployeeRepository) Get(ctx context.Context, id int32) (*model.Employee, error) {
	rows, err := r.db.Query(ctx, getEmployeeSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get employee %d", id)
	}
	defer rows.Close()

	// CollectOneRow returns pgx.ErrNoRows when nothing matched.
	employee, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Employee])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to collect employee %d", id)
	}

	return &employee, nil
}

// Create inserts the form and returns the id assigned by the store. Any id
// in the form is ignored. Absent fields are sent as NULL.
func (r *EmployeeRepository) Create(ctx context.Context, form model.EmployeeForm) (int32, error) {
	var id int32
	err := r.db.QueryRow(ctx, insertEmployeeSQL, form.WithoutID().InsertArgs()...).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert employee")
	}

	return id, nil
}

// Update sets only the columns present in the form.
func (r *EmployeeRepository) Update(ctx context.Context, id int32, form model.EmployeeForm) (int64, error) {
	query, args, err := buildUpdate(id, form)
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to update employee %d", id)
	}

	return tag.RowsAffected(), nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int32) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteEmployeeSQL, id)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to delete employee %d", id)
	}

	return tag.RowsAffected(), nil
}

// buildUpdate renders the UPDATE statement. Column names come from
// model.EmployeeForm.Changes, which only yields whitelisted columns.
func buildUpdate(id int32, form model.EmployeeForm) (string, []any, error) {
	changes := form.Changes()
	if len(changes) == 0 {
		return "", nil, ErrNoChanges
	}

	sets := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)
	for i, change := range changes {
		sets = append(sets, fmt.Sprintf("%s = $%d", change.Column, i+1))
		args = append(args, change.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args, nil
}
