package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

// scopeFilter narrows a record listing to what caller may see. Patients
// and doctors are pinned to their own records whatever they asked for.
func scopeFilter(caller models.Principal, f models.RecordFilter) models.RecordFilter {
	id := caller.ID
	switch caller.Role {
	case models.RolePatient:
		f.PatientID = &id
	case models.RoleDoctor:
		f.DoctorID = &id
	}
	return f
}

// visible reports whether caller may see a record between patient and doctor.
func visible(caller models.Principal, patientID, doctorID primitive.ObjectID) bool {
	switch caller.Role {
	case models.RolePatient:
		return caller.ID == patientID
	case models.RoleDoctor:
		return caller.ID == doctorID
	}
	return true
}

// resolveDoctor picks the doctor of a new record. A doctor caller records
// under their own id.
func resolveDoctor(ctx context.Context, users repository.UserRepository, caller models.Principal, requested string) (*models.User, error) {
	if caller.Role == models.RoleDoctor {
		if requested != "" && requested != caller.ID.Hex() {
			return nil, apperror.Forbidden("Doctors can only record under their own account")
		}
		requested = caller.ID.Hex()
	}
	if requested == "" {
		return nil, apperror.Validation("doctorId is required")
	}
	id, err := ParseID(requested, "doctor")
	if err != nil {
		return nil, err
	}
	return findWithRole(ctx, users, id, models.RoleDoctor, "Doctor not found")
}

func findWithRole(ctx context.Context, users repository.UserRepository, id primitive.ObjectID, role models.Role, msg string) (*models.User, error) {
	u, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msg)
	}
	if u.Role != role {
		return nil, apperror.NotFound("%s", msg)
	}
	return u, nil
}
