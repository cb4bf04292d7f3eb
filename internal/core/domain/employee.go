package domain

import "time"

// Employee is the core aggregate root. EmployeeID is assigned once at
// creation from the allocation sequence and is never mutated or reused,
// even after the record is deleted. Seq is the numeric value behind the
// identifier and is the canonical sort key for all listings (identifiers
// widen past E999, so lexicographic order on the string would be wrong).
type Employee struct {
	ID          string         `json:"-" bson:"_id,omitempty"`
	EmployeeID  string         `json:"id" bson:"employee_id"`
	Seq         int64          `json:"-" bson:"seq"`
	Name        string         `json:"name" bson:"name"`
	Department  string         `json:"department" bson:"department"`
	Salary      float64        `json:"salary" bson:"salary"`
	JoiningDate string         `json:"joining_date" bson:"joining_date"`
	Skills      []string       `json:"skills" bson:"skills"`
	Extra       map[string]any `json:"extra,omitempty" bson:"extra,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// JoiningDateLayout is the wire format for Employee.JoiningDate.
const JoiningDateLayout = "2006-01-02"

// DepartmentSalary is a row of the average-salary aggregation.
type DepartmentSalary struct {
	Department string  `json:"department" bson:"department"`
	AvgSalary  float64 `json:"avg_salary" bson:"avg_salary"`
}
