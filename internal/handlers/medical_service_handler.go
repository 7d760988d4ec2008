package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinique-api/internal/middleware"
	"github.com/harentsoaR/clinique-api/internal/models"
)

func (h *Handler) CreateMedicalService(c *gin.Context) {
	var req models.CreateMedicalServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	ms, err := h.MedicalServices.Create(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ms)
}

func (h *Handler) ListMedicalServices(c *gin.Context) {
	clinicID, ok := queryID(c, "clinicId", "clinique")
	if !ok {
		return
	}
	rows, err := h.MedicalServices.List(c.Request.Context(), clinicID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, rows)
}

func (h *Handler) GetMedicalService(c *gin.Context) {
	id, ok := pathID(c, "medical service")
	if !ok {
		return
	}
	ms, err := h.MedicalServices.Get(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ms)
}

func (h *Handler) UpdateMedicalService(c *gin.Context) {
	id, ok := pathID(c, "medical service")
	if !ok {
		return
	}
	var req models.UpdateMedicalServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	ms, err := h.MedicalServices.Update(c.Request.Context(), id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ms)
}

func (h *Handler) DeleteMedicalService(c *gin.Context) {
	id, ok := pathID(c, "medical service")
	if !ok {
		return
	}
	if err := h.MedicalServices.Delete(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	deleted(c, "Medical service")
}
