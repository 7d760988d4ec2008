package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("Clinique not found"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Validation("bad"), http.StatusBadRequest},
		{Forbidden("no"), http.StatusForbidden},
		{Unauthorized("who"), http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("x")), http.StatusNotFound},
	}
	for _, tt := range tests {
		if got := Status(tt.err); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestMessage_HidesInternal(t *testing.T) {
	if got := Message(errors.New("mongo: connection refused")); got != "Internal server error" {
		t.Errorf("internal error leaked: %q", got)
	}
	if got := Message(NotFound("User %s not found", "42")); got != "User 42 not found" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("ctx: %w", Forbidden("denied"))
	if !Is(err, KindForbidden) {
		t.Error("expected wrapped forbidden to match")
	}
	if Is(err, KindConflict) {
		t.Error("forbidden must not match conflict")
	}
}
