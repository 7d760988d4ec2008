package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/clinique-api/internal/apperror"
	"github.com/harentsoaR/clinique-api/internal/middleware"
	"github.com/harentsoaR/clinique-api/internal/models"
)

// recordFilter reads ?patientId=&doctorId=&clinicId= for record listings.
// Services narrow it further for patients and doctors.
func recordFilter(c *gin.Context) (models.RecordFilter, bool) {
	var f models.RecordFilter
	var ok bool
	if f.PatientID, ok = queryID(c, "patientId", "patient"); !ok {
		return f, false
	}
	if f.DoctorID, ok = queryID(c, "doctorId", "doctor"); !ok {
		return f, false
	}
	if f.ClinicID, ok = queryID(c, "clinicId", "clinique"); !ok {
		return f, false
	}
	return f, true
}

func (h *Handler) CreateConsultation(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var req models.CreateConsultationRequest
	if !bindJSON(c, &req) {
		return
	}
	cons, err := h.Consultations.Create(c.Request.Context(), p, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cons)
}

// ListConsultations supports ?status= besides the record filters.
func (h *Handler) ListConsultations(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	f, ok := recordFilter(c)
	if !ok {
		return
	}
	switch status := c.Query("status"); status {
	case "", models.ConsultationScheduled, models.ConsultationCompleted, models.ConsultationCancelled:
		f.Status = status
	default:
		middleware.RespondError(c, apperror.Validation("Invalid status %q", status))
		return
	}

	rows, err := h.Consultations.List(c.Request.Context(), p, f)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	list(c, rows)
}

func (h *Handler) GetConsultation(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "consultation")
	if !ok {
		return
	}
	cons, err := h.Consultations.Get(c.Request.Context(), p, id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

func (h *Handler) UpdateConsultation(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "consultation")
	if !ok {
		return
	}
	var req models.UpdateConsultationRequest
	if !bindJSON(c, &req) {
		return
	}
	cons, err := h.Consultations.Update(c.Request.Context(), p, id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

func (h *Handler) DeleteConsultation(c *gin.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "consultation")
	if !ok {
		return
	}
	if err := h.Consultations.Delete(c.Request.Context(), p, id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	deleted(c, "Consultation")
}
