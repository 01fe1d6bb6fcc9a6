package models

import (
	"time"

	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/query"
)

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleStudent   UserRole = "STUDENT"
	RoleAdmin     UserRole = "ADMIN"
	RoleProfessor UserRole = "PROFESSOR"
	RoleFaculty   UserRole = "FACULTY"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Firstname    string     `db:"firstname" json:"firstname"`
	Lastname     string     `db:"lastname" json:"lastname"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Phone        string     `db:"phone" json:"phone"`
	Role         UserRole   `db:"role" json:"role"`
	IsVerified   bool       `db:"is_verified" json:"isVerified"`
	ProfileImg   string     `db:"profile_img" json:"profileImg,omitempty"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// References implements query.Relational. Users hold no relations.
func (u *User) References(string) []query.Reference { return nil }

// UserSchema lists the queryable user fields. The password hash is never projected.
var UserSchema = query.NewSchema("users", withTimestamps(
	query.Field{Name: "firstname", Column: "firstname", Kind: query.String},
	query.Field{Name: "lastname", Column: "lastname", Kind: query.String},
	query.Field{Name: "email", Column: "email", Kind: query.String},
	query.Field{Name: "phone", Column: "phone", Kind: query.String},
	query.Field{Name: "role", Column: "role", Kind: query.String},
	query.Field{Name: "isVerified", Column: "is_verified", Kind: query.Bool},
	query.Field{Name: "profileImg", Column: "profile_img", Kind: query.String},
	query.Field{Name: "lastLogin", Column: "last_login", Kind: query.Time},
)...)

// UserConstraints guards user writes.
var UserConstraints = guard.Constraints[*User]{
	Entity: "User",
	Unique: []guard.Unique[*User]{
		{Field: "email", Column: "email", Value: func(u *User) string { return u.Email }, Normalize: guard.Lower},
		{Field: "phone", Column: "phone", Value: func(u *User) string { return u.Phone }, Normalize: guard.Trim},
	},
}
