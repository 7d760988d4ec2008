package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MedicalService is a billable act offered by a clinic.
type MedicalService struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64            `bson:"price" json:"price"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"`
	ClinicID        primitive.ObjectID `bson:"clinicId" json:"clinicId"`
	IsActive        bool               `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateMedicalServiceRequest struct {
	Name            string   `json:"name" binding:"required,max=120"`
	Description     string   `json:"description"`
	Price           *float64 `json:"price" binding:"required,gte=0"`
	DurationMinutes int      `json:"durationMinutes" binding:"gte=0"`
	ClinicID        string   `json:"clinicId" binding:"required,mongodb"`
}

type UpdateMedicalServiceRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,max=120"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" binding:"omitempty,gte=0"`
	IsActive        *bool    `json:"isActive,omitempty"`
}
