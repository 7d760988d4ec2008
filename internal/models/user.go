package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of user categories.
type Role string

const (
	RoleSuperAdmin   Role = "super-admin"
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
	RoleDoctor       Role = "doctor"
	RolePatient      Role = "patient"
)

// AllRoles lists every valid role.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleReceptionist, RoleDoctor, RolePatient}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleReceptionist, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Assignable reports whether users of this role can be attached to a clinic.
func (r Role) Assignable() bool {
	return r == RoleDoctor || r == RoleReceptionist
}

func (r Role) String() string { return string(r) }

// UnmarshalText rejects anything outside the closed set, so request bodies
// cannot smuggle in free-form roles.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName       string              `bson:"fullName" json:"fullName"`
	Email          string              `bson:"email" json:"email"`
	Password       string              `bson:"password" json:"-"` // bcrypt hash
	Role           Role                `bson:"role" json:"role"`
	Phone          string              `bson:"phone,omitempty" json:"phone,omitempty"`
	ClinicID       *primitive.ObjectID `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	Specialization string              `bson:"specialization,omitempty" json:"specialization,omitempty"`
	DateOfBirth    *time.Time          `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CreateUserRequest is the single entry point for every role.
type CreateUserRequest struct {
	FullName       string     `json:"fullName" binding:"required,min=2,max=120"`
	Email          string     `json:"email" binding:"required,email"`
	Password       string     `json:"password" binding:"required,min=8"`
	Role           Role       `json:"role" binding:"required"`
	Phone          string     `json:"phone" binding:"omitempty,e164"`
	ClinicID       string     `json:"clinicId" binding:"omitempty,mongodb"`
	Specialization string     `json:"specialization" binding:"omitempty,max=120"`
	DateOfBirth    *time.Time `json:"dateOfBirth"`
}

// RegisterRequest is the public sign-up body; it always yields a patient.
type RegisterRequest struct {
	FullName    string     `json:"fullName" binding:"required,min=2,max=120"`
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	Phone       string     `json:"phone" binding:"omitempty,e164"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest holds the fields a user may change on their own
// record. Role and email are immutable.
type UpdateProfileRequest struct {
	FullName       *string `json:"fullName,omitempty" binding:"omitempty,min=2,max=120"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,e164"`
	Specialization *string `json:"specialization,omitempty" binding:"omitempty,max=120"`
}

// UserFilter narrows user listings. Zero values match everything.
type UserFilter struct {
	Role     Role
	ClinicID *primitive.ObjectID
}

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    primitive.ObjectID
	Role  Role
	Email string
}
