package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinique-api/internal/middleware"
	"github.com/harentsoaR/clinique-api/internal/models"
)

func (h *Handler) CreateEquipment(c *gin.Context) {
	var req models.CreateEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Equipment.Create(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// ListEquipment returns active equipment, optionally for one clinic
// (?clinicId=).
func (h *Handler) ListEquipment(c *gin.Context) {
	clinicID, ok := queryID(c, "clinicId", "clinique")
	if !ok {
		return
	}
	rows, err := h.Equipment.List(c.Request.Context(), clinicID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, rows)
}

func (h *Handler) ListLowStock(c *gin.Context) {
	clinicID, ok := queryID(c, "clinicId", "clinique")
	if !ok {
		return
	}
	rows, err := h.Equipment.LowStock(c.Request.Context(), clinicID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, rows)
}

func (h *Handler) GetEquipment(c *gin.Context) {
	id, ok := pathID(c, "equipment")
	if !ok {
		return
	}
	e, err := h.Equipment.Get(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := pathID(c, "equipment")
	if !ok {
		return
	}
	var req models.UpdateEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Equipment.Update(c.Request.Context(), id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, ok := pathID(c, "equipment")
	if !ok {
		return
	}
	if err := h.Equipment.Delete(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	deleted(c, "Equipment")
}
