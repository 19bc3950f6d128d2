package handlers

import (
	"github.com/gin-gonic/gin"

	"hospital-appointment-server/internal/middleware"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/services"
	"hospital-appointment-server/internal/utils"
)

// DoctorHandler handles the doctor-facing workflow surface.
type DoctorHandler struct {
	Auth       *services.AuthService
	Directory  *services.DirectoryService
	Scheduling *services.SchedulingService
	Clinical   *services.ClinicalService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(auth *services.AuthService, directory *services.DirectoryService, scheduling *services.SchedulingService, clinical *services.ClinicalService) *DoctorHandler {
	return &DoctorHandler{Auth: auth, Directory: directory, Scheduling: scheduling, Clinical: clinical}
}

// DoctorDashboardResponse carries the doctor's profile, appointments and
// assigned patients.
type DoctorDashboardResponse struct {
	Doctor           *models.Doctor       `json:"doctor"`
	Appointments     []models.Appointment `json:"appointments"`
	AssignedPatients []models.Patient     `json:"assignedPatients"`
}

// Dashboard returns the logged-in doctor's overview.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	doctorID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}

	doctor, err := h.Directory.DoctorByID(doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	appointments, err := h.Scheduling.DoctorAppointments(doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	patients, err := h.Scheduling.AssignedPatients(doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Dashboard fetched successfully", DoctorDashboardResponse{
		Doctor:           doctor,
		Appointments:     appointments,
		AssignedPatients: patients,
	})
}

// AppointmentAction completes or cancels one of the doctor's own booked
// appointments. The action path parameter is "complete" or "cancel".
func (h *DoctorHandler) AppointmentAction(c *gin.Context) {
	doctorID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := h.Scheduling.CompleteOrCancel(appointmentID, doctorID, c.Param("action"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment updated successfully", appointment)
}

// GetTreatment fetches the treatment recorded for one of the doctor's
// appointments.
func (h *DoctorHandler) GetTreatment(c *gin.Context) {
	doctorID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	treatment, err := h.Clinical.TreatmentForAppointment(appointmentID, doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Treatment fetched successfully", treatment)
}

// TreatmentRequest represents the request body for recording a treatment.
type TreatmentRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	Medicines    string `json:"medicines"`
}

// UpdateTreatment records or overwrites the treatment for one of the
// doctor's appointments and marks the appointment completed.
func (h *DoctorHandler) UpdateTreatment(c *gin.Context) {
	doctorID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TreatmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	treatment, err := h.Clinical.RecordTreatment(appointmentID, doctorID, req.Diagnosis, req.Prescription, req.Medicines)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Patient history updated", treatment)
}

// PatientHistory returns a patient's treatment history for the doctor view.
func (h *DoctorHandler) PatientHistory(c *gin.Context) {
	patientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.Directory.PatientByID(patientID); err != nil {
		respondServiceError(c, err)
		return
	}
	treatments, err := h.Clinical.PatientHistory(patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Patient history fetched successfully", treatments)
}

// AvailabilityRequest represents the request body for declaring availability.
type AvailabilityRequest struct {
	Date        string `json:"date" binding:"required"`
	TimeSlot    string `json:"timeSlot" binding:"required"`
	IsAvailable *bool  `json:"isAvailable" binding:"required"`
}

// SetAvailability upserts the doctor's availability for a date and slot.
func (h *DoctorHandler) SetAvailability(c *gin.Context) {
	doctorID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}

	var req AvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	availability, err := h.Scheduling.SetAvailability(doctorID, req.Date, req.TimeSlot, *req.IsAvailable)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Availability saved", availability)
}

// ListAvailability returns the doctor's declared availability.
func (h *DoctorHandler) ListAvailability(c *gin.Context) {
	doctorID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}

	rows, err := h.Scheduling.ListAvailability(doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Availability fetched successfully", rows)
}

// ChangePasswordRequest represents the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ChangePassword lets a doctor replace the default password assigned at
// creation.
func (h *DoctorHandler) ChangePassword(c *gin.Context) {
	doctorID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}

	var req ChangePasswordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Auth.ChangeDoctorPassword(doctorID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Password changed successfully", nil)
}
