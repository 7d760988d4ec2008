package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/clinique-api/internal/middleware"
	"github.com/harentsoaR/clinique-api/internal/models"
	"github.com/harentsoaR/clinique-api/internal/services"
)

func (h *Handler) CreateClinic(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var req models.CreateClinicRequest
	if !bindJSON(c, &req) {
		return
	}
	clinic, err := h.Clinics.CreateClinic(c.Request.Context(), req, p.ID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, clinic)
}

func (h *Handler) ListClinics(c *gin.Context) {
	clinics, err := h.Clinics.ListAll(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, clinics)
}

// ListMyClinics returns the clinics created by the calling admin.
func (h *Handler) ListMyClinics(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	clinics, err := h.Clinics.ListCreatedBy(c.Request.Context(), p.ID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, clinics)
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, ok := pathID(c, "clinique")
	if !ok {
		return
	}
	clinic, err := h.Clinics.GetClinic(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clinic)
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	id, ok := pathID(c, "clinique")
	if !ok {
		return
	}
	var req models.UpdateClinicRequest
	if !bindJSON(c, &req) {
		return
	}
	clinic, err := h.Clinics.UpdateClinic(c.Request.Context(), id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clinic)
}

func (h *Handler) DeleteClinic(c *gin.Context) {
	id, ok := pathID(c, "clinique")
	if !ok {
		return
	}
	if err := h.Clinics.DeleteClinic(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	deleted(c, "Clinique")
}

func parseIDs(c *gin.Context, raw []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := services.ParseID(s, "user")
		if err != nil {
			middleware.RespondError(c, err)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func (h *Handler) AssignUsers(c *gin.Context) {
	var req models.AssignUsersRequest
	if !bindJSON(c, &req) {
		return
	}
	clinicID, err := services.ParseID(req.ClinicID, "clinique")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	ids, ok := parseIDs(c, req.UserIDs)
	if !ok {
		return
	}

	users, err := h.Clinics.AssignUsers(c.Request.Context(), clinicID, req.Role, ids)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, users)
}

func (h *Handler) UnassignUsers(c *gin.Context) {
	var req models.UnassignUsersRequest
	if !bindJSON(c, &req) {
		return
	}
	ids, ok := parseIDs(c, req.UserIDs)
	if !ok {
		return
	}

	users, err := h.Clinics.UnassignUsers(c.Request.Context(), req.Role, ids)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, users)
}

func (h *Handler) ListClinicStaff(c *gin.Context) {
	id, ok := pathID(c, "clinique")
	if !ok {
		return
	}
	role, ok := roleQuery(c)
	if !ok {
		return
	}
	staff, err := h.Clinics.ListStaff(c.Request.Context(), id, role)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, staff)
}
