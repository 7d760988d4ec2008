package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinique-api/internal/middleware"
	"github.com/harentsoaR/clinique-api/internal/models"
)

func (h *Handler) CreatePrescription(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var req models.CreatePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	rx, err := h.Prescriptions.Create(c.Request.Context(), p, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rx)
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	f, ok := recordFilter(c)
	if !ok {
		return
	}
	rows, err := h.Prescriptions.List(c.Request.Context(), p, f)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, rows)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "prescription")
	if !ok {
		return
	}
	rx, err := h.Prescriptions.Get(c.Request.Context(), p, id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rx)
}

func (h *Handler) UpdatePrescription(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "prescription")
	if !ok {
		return
	}
	var req models.UpdatePrescriptionRequest
	if !bindJSON(c, &req) {
		return
	}
	rx, err := h.Prescriptions.Update(c.Request.Context(), p, id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rx)
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "prescription")
	if !ok {
		return
	}
	if err := h.Prescriptions.Delete(c.Request.Context(), p, id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	deleted(c, "Prescription")
}
