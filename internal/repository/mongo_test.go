package repository

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/harentsoaR/clinique-api/internal/models"
)

func TestTranslate(t *testing.T) {
	if err := translate(mongo.ErrNoDocuments); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	if err := translate(dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	other := errors.New("network down")
	if err := translate(other); err != other {
		t.Errorf("expected passthrough, got %v", err)
	}
}

func TestRecordFilter(t *testing.T) {
	if f := recordFilter(models.RecordFilter{}); len(f) != 0 {
		t.Errorf("expected empty filter, got %v", f)
	}

	p, d := primitive.NewObjectID(), primitive.NewObjectID()
	f := recordFilter(models.RecordFilter{PatientID: &p, DoctorID: &d})
	if f["patientId"] != p || f["doctorId"] != d {
		t.Errorf("unexpected filter %v", f)
	}
	if _, ok := f["clinicId"]; ok {
		t.Error("clinicId must be absent when unset")
	}
}
