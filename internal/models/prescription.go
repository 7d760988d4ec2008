package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Medication struct {
	Name      string `bson:"name" json:"name" binding:"required"`
	Dosage    string `bson:"dosage" json:"dosage" binding:"required"`
	Frequency string `bson:"frequency" json:"frequency" binding:"required"`
	Duration  string `bson:"duration,omitempty" json:"duration,omitempty"`
}

type Prescription struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PatientID      primitive.ObjectID  `bson:"patientId" json:"patientId"`
	DoctorID       primitive.ObjectID  `bson:"doctorId" json:"doctorId"`
	ConsultationID *primitive.ObjectID `bson:"consultationId,omitempty" json:"consultationId,omitempty"`
	Medications    []Medication        `bson:"medications" json:"medications"`
	Notes          string              `bson:"notes,omitempty" json:"notes,omitempty"`
	IssuedAt       time.Time           `bson:"issuedAt" json:"issuedAt"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type CreatePrescriptionRequest struct {
	PatientID      string       `json:"patientId" binding:"required,mongodb"`
	DoctorID       string       `json:"doctorId" binding:"omitempty,mongodb"`
	ConsultationID string       `json:"consultationId" binding:"omitempty,mongodb"`
	Medications    []Medication `json:"medications" binding:"required,min=1,dive"`
	Notes          string       `json:"notes"`
}

type UpdatePrescriptionRequest struct {
	Medications []Medication `json:"medications,omitempty" binding:"omitempty,min=1,dive"`
	Notes       *string      `json:"notes,omitempty"`
}
