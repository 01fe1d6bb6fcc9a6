package models

import (
	"time"

	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// ProgramType enumerates degree levels.
type ProgramType string

const (
	ProgramDiploma  ProgramType = "Diploma"
	ProgramBachelor ProgramType = "Bachelor"
	ProgramMaster   ProgramType = "Master"
	ProgramPhD      ProgramType = "PhD"
)

// DefaultProgramDuration applies when a program is created without durationYears.
const DefaultProgramDuration = 4

// Program is a degree offered by a college.
type Program struct {
	ID            string      `db:"id" json:"id"`
	Name          string      `db:"name" json:"name"`
	Code          string      `db:"code" json:"code"`
	Type          ProgramType `db:"type" json:"type"`
	DurationYears int         `db:"duration_years" json:"durationYears"`
	College       Ref         `db:"college_id" json:"college"`
	Department    Ref         `db:"department_id" json:"department"`
	Courses       RefList     `db:"course_ids" json:"courses"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`
}

// References implements query.Relational.
func (p *Program) References(field string) []query.Reference {
	switch field {
	case "college":
		return single(&p.College)
	case "department":
		return single(&p.Department)
	case "courses":
		return p.Courses.References()
	}
	return nil
}

// ProgramSchema lists the queryable program fields.
var ProgramSchema = query.NewSchema("programs", withTimestamps(
	query.Field{Name: "name", Column: "name", Kind: query.String},
	query.Field{Name: "code", Column: "code", Kind: query.String},
	query.Field{Name: "type", Column: "type", Kind: query.String},
	query.Field{Name: "durationYears", Column: "duration_years", Kind: query.Int},
	query.Field{Name: "college", Column: "college_id", Kind: query.ID},
	query.Field{Name: "department", Column: "department_id", Kind: query.ID},
	query.Field{Name: "courses", Column: "course_ids", Kind: query.IDList},
)...)

// ProgramExpansions are populated on every program read.
var ProgramExpansions = []query.Expansion{
	{Field: "college", Schema: CollegeSchema},
	{Field: "department", Schema: DepartmentSchema},
	{Field: "courses", Schema: CourseSchema},
}

// ProgramConstraints guards program writes.
var ProgramConstraints = guard.Constraints[*Program]{
	Entity: "Program",
	References: []guard.Reference[*Program]{
		{Field: "college", IDs: func(p *Program) []string { return p.College.IDs() }},
		{Field: "department", IDs: func(p *Program) []string { return p.Department.IDs() }},
		{Field: "courses", IDs: func(p *Program) []string { return p.Courses.IDs() }},
	},
	Unique: []guard.Unique[*Program]{
		{Field: "name", Column: "name", Value: func(p *Program) string { return p.Name }, Normalize: guard.Trim},
		{Field: "code", Column: "code", Value: func(p *Program) string { return p.Code }, Normalize: guard.UpperTrim},
	},
}
