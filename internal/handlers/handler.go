package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/access"
	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/middleware"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/services"
	"github.com/harentsoaR/clinique-api/internal/utils"
)

// Handler holds every service the HTTP layer dispatches to.
type Handler struct {
	Users           *services.UserService
	Clinics         *services.ClinicService
	Equipment       *services.EquipmentService
	MedicalServices *services.MedicalServiceService
	Consultations   *services.ConsultationService
	Prescriptions   *services.PrescriptionService

	Issuer *utils.TokenIssuer
	Gate   *access.Gate
	Log    zerolog.Logger

	// Health reports whether the backing store is reachable. Nil means
	// always healthy.
	Health func(ctx context.Context) error
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.RespondError(c, apperror.Validation("%s", err.Error()))
		return false
	}
	return true
}

func pathID(c *gin.Context, what string) (primitive.ObjectID, bool) {
	id, err := services.ParseID(c.Param("id"), what)
	if err != nil {
		middleware.RespondError(c, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

func queryID(c *gin.Context, key, what string) (*primitive.ObjectID, bool) {
	id, err := services.ParseOptionalID(c.Query(key), what)
	if err != nil {
		middleware.RespondError(c, err)
		return nil, false
	}
	return id, true
}

func caller(c *gin.Context) (models.Principal, bool) {
	p, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.RespondError(c, apperror.Unauthorized("User not authenticated"))
	}
	return p, ok
}

// list writes rows as a JSON array, never null.
func list[T any](c *gin.Context, rows []T) {
	if rows == nil {
		rows = []T{}
	}
	c.JSON(http.StatusOK, rows)
}

func deleted(c *gin.Context, what string) {
	c.JSON(http.StatusOK, gin.H{"message": what + " deleted successfully"})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	if h.Health != nil {
		if err := h.Health(c.Request.Context()); err != nil {
			h.Log.Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
