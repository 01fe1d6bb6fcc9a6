package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// Address is the postal address of a college, stored as jsonb.
type Address struct {
	Street  string `json:"street,omitempty" validate:"omitempty,max=100"`
	City    string `json:"city,omitempty" validate:"omitempty,max=60"`
	State   string `json:"state,omitempty" validate:"omitempty,max=60"`
	ZipCode string `json:"zipCode,omitempty" validate:"omitempty,max=20"`
	Country string `json:"country,omitempty" validate:"omitempty,max=60"`
}

// Scan implements sql.Scanner.
func (a *Address) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = Address{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("models: cannot scan %T into Address", src)
	}
}

// Value implements driver.Valuer.
func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// College groups departments under a dean.
type College struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Code            string    `db:"code" json:"code"`
	Description     string    `db:"description" json:"description"`
	Address         *Address  `db:"address" json:"address,omitempty"`
	EstablishedYear *int      `db:"established_year" json:"establishedYear,omitempty"`
	Website         string    `db:"website" json:"website,omitempty"`
	University      Ref       `db:"university_id" json:"university"`
	Dean            Ref       `db:"dean_id" json:"dean"`
	Departments     RefList   `db:"department_ids" json:"departments"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// References implements query.Relational.
func (c *College) References(field string) []query.Reference {
	switch field {
	case "university":
		return single(&c.University)
	case "dean":
		return single(&c.Dean)
	case "departments":
		return c.Departments.References()
	}
	return nil
}

// CollegeSchema lists the queryable college fields.
var CollegeSchema = query.NewSchema("colleges", withTimestamps(
	query.Field{Name: "name", Column: "name", Kind: query.String},
	query.Field{Name: "code", Column: "code", Kind: query.String},
	query.Field{Name: "description", Column: "description", Kind: query.String},
	query.Field{Name: "address", Column: "address", Kind: query.Document},
	query.Field{Name: "establishedYear", Column: "established_year", Kind: query.Int},
	query.Field{Name: "website", Column: "website", Kind: query.String},
	query.Field{Name: "university", Column: "university_id", Kind: query.ID},
	query.Field{Name: "dean", Column: "dean_id", Kind: query.ID},
	query.Field{Name: "departments", Column: "department_ids", Kind: query.IDList},
)...)

// CollegeExpansions are populated on every college read.
var CollegeExpansions = []query.Expansion{
	{Field: "dean", Schema: UserSchema, Fields: []string{"firstname", "lastname", "email"}},
	{Field: "departments", Schema: DepartmentSchema, Fields: []string{"name", "code"}},
}

// CollegeConstraints guards college writes.
var CollegeConstraints = guard.Constraints[*College]{
	Entity: "College",
	References: []guard.Reference[*College]{
		{Field: "university", IDs: func(c *College) []string { return c.University.IDs() }},
		{Field: "dean", IDs: func(c *College) []string { return c.Dean.IDs() }},
		{Field: "departments", IDs: func(c *College) []string { return c.Departments.IDs() }},
	},
	Unique: []guard.Unique[*College]{
		{Field: "code", Column: "code", Value: func(c *College) string { return c.Code }, Normalize: guard.UpperTrim},
	},
}
