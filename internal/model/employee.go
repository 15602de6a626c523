package model

// Employee is a persisted row of the employees table.
type Employee struct {
	ID    int32  `json:"id" db:"id"`
	Fname string `json:"fname" db:"fname"`
	Lname string `json:"lname" db:"lname"`
	Age   int32  `json:"age" db:"age"`
	Title string `json:"title" db:"title"`
}

// EmployeeList is the response envelope for the collection.
type EmployeeList struct {
	Results []Employee `json:"results"`
}

// EmployeeForm is the sparse payload used for both create and partial update.
//
// ID is accepted so clients can echo a full record back, but it is never
// written: WithoutID clears it and Changes never reports it.
type EmployeeForm struct {
	ID    Optional[int32]  `json:"id,omitzero"`
	Fname Optional[string] `json:"fname,omitzero"`
	Lname Optional[string] `json:"lname,omitzero"`
	Age   Optional[int32]  `json:"age,omitzero"`
	Title Optional[string] `json:"title,omitzero"`
}

// Change is one column assignment of an update.
type Change struct {
	Column string
	Value  any
}

// Columns lists the writable columns in statement order.
var Columns = []string{"fname", "lname", "age", "title"}

// WithoutID returns a copy of the form with the id dropped.
func (f EmployeeForm) WithoutID() EmployeeForm {
	f.ID = Optional[int32]{}
	return f
}

// Changes returns the present writable fields in Columns order.
func (f EmployeeForm) Changes() []Change {
	var changes []Change

	if v, ok := f.Fname.Get(); ok {
		changes = append(changes, Change{Column: "fname", Value: v})
	}
	if v, ok := f.Lname.Get(); ok {
		changes = append(changes, Change{Column: "lname", Value: v})
	}
	if v, ok := f.Age.Get(); ok {
		changes = append(changes, Change{Column: "age", Value: v})
	}
	if v, ok := f.Title.Get(); ok {
		changes = append(changes, Change{Column: "title", Value: v})
	}

	return changes
}

// HasChanges reports whether at least one writable field is present.
func (f EmployeeForm) HasChanges() bool {
	return len(f.Changes()) > 0
}

// InsertArgs returns one argument per entry in Columns. Fields that were
// not provided are nil so the store sees NULL and enforces NOT NULL itself.
func (f EmployeeForm) InsertArgs() []any {
	return []any{
		valueOrNil(f.Fname),
		valueOrNil(f.Lname),
		valueOrNil(f.Age),
		valueOrNil(f.Title),
	}
}

// Apply overwrites the fields of e that are present in the form.
func (f EmployeeForm) Apply(e Employee) Employee {
	if v, ok := f.Fname.Get(); ok {
		e.Fname = v
	}
	if v, ok := f.Lname.Get(); ok {
		e.Lname = v
	}
	if v, ok := f.Age.Get(); ok {
		e.Age = v
	}
	if v, ok := f.Title.Get(); ok {
		e.Title = v
	}
	return e
}

func valueOrNil[T any](o Optional[T]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}
