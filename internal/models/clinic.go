package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Clinic struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Address   string             `bson:"address" json:"address"`
	Phone     string             `bson:"phone" json:"phone"`
	Email     string             `bson:"email" json:"email"`
	AddedBy   primitive.ObjectID `bson:"addedBy" json:"addedBy"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ClinicWithAdmin is a clinic with its owning admin populated.
type ClinicWithAdmin struct {
	Clinic
	AddedBy *User `json:"addedBy"`
}

type CreateClinicRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone" binding:"required,e164"`
	Email   string `json:"email" binding:"required,email"`
}

type UpdateClinicRequest struct {
	Name    *string `json:"name,omitempty" binding:"omitempty,min=2,max=120"`
	Address *string `json:"address,omitempty" binding:"omitempty,min=1"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,e164"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
}

// AssignUsersRequest attaches doctors or receptionists to a clinic.
type AssignUsersRequest struct {
	ClinicID string   `json:"cliniqueId" binding:"required,mongodb"`
	Role     Role     `json:"role" binding:"required"`
	UserIDs  []string `json:"userIds" binding:"required,min=1,dive,mongodb"`
}

type UnassignUsersRequest struct {
	Role    Role     `json:"role" binding:"required"`
	UserIDs []string `json:"userIds" binding:"required,min=1,dive,mongodb"`
}
