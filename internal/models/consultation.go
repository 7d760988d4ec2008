package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ConsultationScheduled = "scheduled"
	ConsultationCompleted = "completed"
	ConsultationCancelled = "cancelled"
)

type Consultation struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PatientID primitive.ObjectID  `bson:"patientId" json:"patientId"`
	DoctorID  primitive.ObjectID  `bson:"doctorId" json:"doctorId"`
	ClinicID  *primitive.ObjectID `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	Date      time.Time           `bson:"date" json:"date"`
	Reason    string              `bson:"reason" json:"reason"`
	Diagnosis string              `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Notes     string              `bson:"notes,omitempty" json:"notes,omitempty"`
	Status    string              `bson:"status" json:"status"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type CreateConsultationRequest struct {
	PatientID string    `json:"patientId" binding:"required,mongodb"`
	DoctorID  string    `json:"doctorId" binding:"omitempty,mongodb"`
	ClinicID  string    `json:"clinicId" binding:"omitempty,mongodb"`
	Date      time.Time `json:"date" binding:"required"`
	Reason    string    `json:"reason" binding:"required,max=500"`
	Diagnosis string    `json:"diagnosis"`
	Notes     string    `json:"notes"`
}

type UpdateConsultationRequest struct {
	Date      *time.Time `json:"date,omitempty"`
	Reason    *string    `json:"reason,omitempty" binding:"omitempty,max=500"`
	Diagnosis *string    `json:"diagnosis,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Status    *string    `json:"status,omitempty" binding:"omitempty,oneof=scheduled completed cancelled"`
}

// RecordFilter scopes consultation and prescription listings.
type RecordFilter struct {
	PatientID *primitive.ObjectID
	DoctorID  *primitive.ObjectID
	ClinicID  *primitive.ObjectID
	// Status only applies to consultations.
	Status    string
}
