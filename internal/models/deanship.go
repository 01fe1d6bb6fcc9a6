package models

import (
	"time"

	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// Deanship records which user leads a college. A college has at most one deanship.
type Deanship struct {
	ID        string     `db:"id" json:"id"`
	Dean      Ref        `db:"dean_id" json:"dean"`
	College   Ref        `db:"college_id" json:"college"`
	StartDate time.Time  `db:"start_date" json:"startDate"`
	EndDate   *time.Time `db:"end_date" json:"endDate,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
}

// References implements query.Relational.
func (d *Deanship) References(field string) []query.Reference {
	switch field {
	case "dean":
		return single(&d.Dean)
	case "college":
		return single(&d.College)
	}
	return nil
}

// DeanshipSchema lists the queryable deanship fields.
var DeanshipSchema = query.NewSchema("deanships", withTimestamps(
	query.Field{Name: "dean", Column: "dean_id", Kind: query.ID},
	query.Field{Name: "college", Column: "college_id", Kind: query.ID},
	query.Field{Name: "startDate", Column: "start_date", Kind: query.Time},
	query.Field{Name: "endDate", Column: "end_date", Kind: query.Time},
)...)

// DeanshipExpansions are populated on every deanship read.
var DeanshipExpansions = []query.Expansion{
	{Field: "dean", Schema: UserSchema, Fields: []string{"firstname", "lastname", "email", "role"}},
	{Field: "college", Schema: CollegeSchema, Fields: []string{"name", "code"}},
}

// DeanshipConstraints guards deanship writes.
var DeanshipConstraints = guard.Constraints[*Deanship]{
	Entity: "Deanship",
	References: []guard.Reference[*Deanship]{
		{Field: "dean", IDs: func(d *Deanship) []string { return d.Dean.IDs() }},
		{Field: "college", IDs: func(d *Deanship) []string { return d.College.IDs() }},
	},
	Unique: []guard.Unique[*Deanship]{
		{
			Field:   "college",
			Column:  "college_id",
			Value:   func(d *Deanship) string { return d.College.ID },
			Message: func(*Deanship) string { return "This college already has a deanship" },
		},
	},
}
