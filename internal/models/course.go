package models

import (
	"time"

	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// Course is a unit of teaching owned by a department and shared by programs.
type Course struct {
	ID            string    `db:"id" json:"id"`
	Code          string    `db:"code" json:"code"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description,omitempty"`
	CreditHours   int       `db:"credit_hours" json:"creditHours"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	Department    Ref       `db:"department_id" json:"department"`
	Prerequisites RefList   `db:"prerequisite_ids" json:"prerequisites"`
	Programs      RefList   `db:"program_ids" json:"programs"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// References implements query.Relational.
func (c *Course) References(field string) []query.Reference {
	switch field {
	case "department":
		return single(&c.Department)
	case "prerequisites":
		return c.Prerequisites.References()
	case "programs":
		return c.Programs.References()
	}
	return nil
}

// CourseSchema lists the queryable course fields.
var CourseSchema = query.NewSchema("courses", withTimestamps(
	query.Field{Name: "code", Column: "code", Kind: query.String},
	query.Field{Name: "title", Column: "title", Kind: query.String},
	query.Field{Name: "description", Column: "description", Kind: query.String},
	query.Field{Name: "creditHours", Column: "credit_hours", Kind: query.Int},
	query.Field{Name: "isActive", Column: "is_active", Kind: query.Bool},
	query.Field{Name: "department", Column: "department_id", Kind: query.ID},
	query.Field{Name: "prerequisites", Column: "prerequisite_ids", Kind: query.IDList},
	query.Field{Name: "programs", Column: "program_ids", Kind: query.IDList},
)...)

// CourseExpansions are populated on every course read.
var CourseExpansions = []query.Expansion{
	{Field: "department", Schema: DepartmentSchema},
	{Field: "programs", Schema: ProgramSchema},
	{Field: "prerequisites", Schema: CourseSchema},
}

// CourseConstraints guards course writes.
var CourseConstraints = guard.Constraints[*Course]{
	Entity: "Course",
	References: []guard.Reference[*Course]{
		{Field: "department", IDs: func(c *Course) []string { return c.Department.IDs() }},
		{Field: "prerequisites", IDs: func(c *Course) []string { return c.Prerequisites.IDs() }},
		{Field: "programs", IDs: func(c *Course) []string { return c.Programs.IDs() }},
	},
	Unique: []guard.Unique[*Course]{
		{Field: "code", Column: "code", Value: func(c *Course) string { return c.Code }, Normalize: guard.UpperTrim},
	},
}
