package models

import (
	"time"

	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// University is the top-level institution.
type University struct {
	ID              string    `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Code            string    `db:"code" json:"code"`
	Website         string    `db:"website" json:"website,omitempty"`
	Phone           string    `db:"phone" json:"phone,omitempty"`
	Location        string    `db:"location" json:"location,omitempty"`
	EstablishedYear *int      `db:"established_year" json:"establishedYear,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// References implements query.Relational. Universities hold no relations.
func (u *University) References(string) []query.Reference { return nil }

// UniversitySchema lists the queryable university fields.
var UniversitySchema = query.NewSchema("universities", withTimestamps(
	query.Field{Name: "name", Column: "name", Kind: query.String},
	query.Field{Name: "code", Column: "code", Kind: query.String},
	query.Field{Name: "website", Column: "website", Kind: query.String},
	query.Field{Name: "phone", Column: "phone", Kind: query.String},
	query.Field{Name: "location", Column: "location", Kind: query.String},
	query.Field{Name: "establishedYear", Column: "established_year", Kind: query.Int},
)...)

// UniversityConstraints guards university writes.
var UniversityConstraints = guard.Constraints[*University]{
	Entity: "University",
	Unique: []guard.Unique[*University]{
		{Field: "code", Column: "code", Value: func(u *University) string { return u.Code }, Normalize: guard.UpperTrim},
	},
}

func withTimestamps(fields ...query.Field) []query.Field {
	return append(fields,
		query.Field{Name: "createdAt", Column: "created_at", Kind: query.Time},
		query.Field{Name: "updatedAt", Column: "updated_at", Kind: query.Time},
	)
}
