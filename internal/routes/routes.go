package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hospital-appointment-server/internal/config"
	"hospital-appointment-server/internal/handlers"
	"hospital-appointment-server/internal/middleware"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/services"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize services and handlers
	authService := services.NewAuthService(db)
	directoryService := services.NewDirectoryService(db)
	schedulingService := services.NewSchedulingService(db)
	clinicalService := services.NewClinicalService(db)

	authHandler := handlers.NewAuthHandler(authService, cfg)
	adminHandler := handlers.NewAdminHandler(directoryService, schedulingService, clinicalService)
	doctorHandler := handlers.NewDoctorHandler(authService, directoryService, schedulingService, clinicalService)
	patientHandler := handlers.NewPatientHandler(authService, directoryService, schedulingService, clinicalService)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/logout", authHandler.Logout)
		}
	}

	// Admin surface
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.POST("/doctors", adminHandler.CreateDoctor)
		admin.GET("/doctors/:id", adminHandler.GetDoctor)
		admin.PUT("/doctors/:id", adminHandler.EditDoctor)
		admin.DELETE("/doctors/:id", adminHandler.DeleteDoctor)
		admin.DELETE("/patients/:id", adminHandler.DeletePatient)
		admin.GET("/patients/:id/history", adminHandler.PatientHistory)
	}

	// Doctor surface
	doctor := router.Group("/api/v1/doctor")
	doctor.Use(middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RoleDoctor))
	{
		doctor.GET("/dashboard", doctorHandler.Dashboard)
		doctor.POST("/appointments/:id/:action", doctorHandler.AppointmentAction)
		doctor.GET("/appointments/:id/treatment", doctorHandler.GetTreatment)
		doctor.PUT("/appointments/:id/treatment", doctorHandler.UpdateTreatment)
		doctor.GET("/patients/:id/history", doctorHandler.PatientHistory)
		doctor.GET("/availability", doctorHandler.ListAvailability)
		doctor.POST("/availability", doctorHandler.SetAvailability)
		doctor.PATCH("/password", doctorHandler.ChangePassword)
	}

	// Patient surface
	patient := router.Group("/api/v1/patient")
	patient.Use(middleware.AuthMiddleware(cfg), middleware.RoleAuthMiddleware(models.RolePatient))
	{
		patient.GET("/dashboard", patientHandler.Dashboard)
		patient.GET("/departments", patientHandler.ListDepartments)
		patient.GET("/departments/:id", patientHandler.GetDepartment)
		patient.GET("/doctors/:id", patientHandler.GetDoctor)
		patient.POST("/appointments", patientHandler.Book)
		patient.POST("/appointments/:id/cancel", patientHandler.Cancel)
		patient.GET("/history", patientHandler.History)
		patient.PUT("/profile", patientHandler.UpdateProfile)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
