package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harentsoaR/clinique-api/internal/access"
	"github.com/harentsoaR/clinique-api/internal/middleware"
)

// Register mounts every route on r. Each protected route runs the
// authentication middleware, then the access gate for its operation.
func (h *Handler) Register(r *gin.Engine) {
	allow := func(op access.Operation) gin.HandlerFunc {
		return middleware.Authorize(h.Gate, op, h.Log)
	}

	r.GET("/health", h.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/curr", middleware.AuthMiddleware(h.Issuer, h.Users), h.GetCurrentUser)
	}

	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(h.Issuer, h.Users))

	users := api.Group("/users")
	{
		users.POST("", allow(access.UserCreate), h.CreateUser)
		users.GET("", allow(access.UserList), h.ListUsers)
		users.PUT("/me", h.UpdateCurrentUser)
		users.GET("/:id", allow(access.UserRead), h.GetUser)
		users.DELETE("/:id", allow(access.UserDelete), h.DeleteUser)
	}

	clinics := api.Group("/clinique")
	{
		clinics.POST("", allow(access.ClinicCreate), h.CreateClinic)
		clinics.GET("", allow(access.ClinicList), h.ListClinics)
		clinics.GET("/mine", allow(access.ClinicCreate), h.ListMyClinics)
		clinics.PATCH("/assign-user", allow(access.ClinicAssign), h.AssignUsers)
		clinics.PATCH("/unassign-user", allow(access.ClinicAssign), h.UnassignUsers)
		clinics.GET("/:id", allow(access.ClinicRead), h.GetClinic)
		clinics.GET("/:id/staff", allow(access.ClinicRead), h.ListClinicStaff)
		clinics.PATCH("/:id", allow(access.ClinicUpdate), h.UpdateClinic)
		clinics.DELETE("/:id", allow(access.ClinicDelete), h.DeleteClinic)
	}

	equipment := api.Group("/equipment")
	{
		equipment.GET("", allow(access.EquipmentRead), h.ListEquipment)
		equipment.POST("", allow(access.EquipmentWrite), h.CreateEquipment)
		equipment.GET("/low-stock", allow(access.EquipmentRead), h.ListLowStock)
		equipment.GET("/:id", allow(access.EquipmentRead), h.GetEquipment)
		equipment.PUT("/:id", allow(access.EquipmentWrite), h.UpdateEquipment)
		equipment.DELETE("/:id", allow(access.EquipmentWrite), h.DeleteEquipment)
	}

	medicalServices := api.Group("/medical-services")
	{
		medicalServices.GET("", allow(access.ServiceRead), h.ListMedicalServices)
		medicalServices.POST("", allow(access.ServiceWrite), h.CreateMedicalService)
		medicalServices.GET("/:id", allow(access.ServiceRead), h.GetMedicalService)
		medicalServices.PUT("/:id", allow(access.ServiceWrite), h.UpdateMedicalService)
		medicalServices.DELETE("/:id", allow(access.ServiceWrite), h.DeleteMedicalService)
	}

	consultations := api.Group("/consultations")
	{
		consultations.GET("", allow(access.ConsultationRead), h.ListConsultations)
		consultations.POST("", allow(access.ConsultationWrite), h.CreateConsultation)
		consultations.GET("/:id", allow(access.ConsultationRead), h.GetConsultation)
		consultations.PUT("/:id", allow(access.ConsultationWrite), h.UpdateConsultation)
		consultations.DELETE("/:id", allow(access.ConsultationDelete), h.DeleteConsultation)
	}

	prescriptions := api.Group("/prescriptions")
	{
		prescriptions.GET("", allow(access.PrescriptionRead), h.ListPrescriptions)
		prescriptions.POST("", allow(access.PrescriptionWrite), h.CreatePrescription)
		prescriptions.GET("/:id", allow(access.PrescriptionRead), h.GetPrescription)
		prescriptions.PUT("/:id", allow(access.PrescriptionWrite), h.UpdatePrescription)
		prescriptions.DELETE("/:id", allow(access.PrescriptionDelete), h.DeletePrescription)
	}
}
