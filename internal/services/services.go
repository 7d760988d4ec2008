// Package services holds the business rules of the clinic API. Every
// exported method returns *apperror.Error for caller-facing failures.
package services

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/repository"
)

// ParseID parses a hex ObjectID; what names the entity in the error.
func ParseID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperror.Validation("Invalid %s id", what)
	}
	return id, nil
}

// ParseOptionalID returns nil for an empty string.
func ParseOptionalID(hex, what string) (*primitive.ObjectID, error) {
	if hex == "" {
		return nil, nil
	}
	id, err := ParseID(hex, what)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// notFound converts repository.ErrNotFound into a caller-facing 404.
func notFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound("%s", message)
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
