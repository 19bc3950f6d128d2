package handlers

import (
	"github.com/gin-gonic/gin"

	"hospital-appointment-server/internal/middleware"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/services"
	"hospital-appointment-server/internal/utils"
)

// PatientHandler handles the patient-facing booking surface.
type PatientHandler struct {
	Auth       *services.AuthService
	Directory  *services.DirectoryService
	Scheduling *services.SchedulingService
	Clinical   *services.ClinicalService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(auth *services.AuthService, directory *services.DirectoryService, scheduling *services.SchedulingService, clinical *services.ClinicalService) *PatientHandler {
	return &PatientHandler{Auth: auth, Directory: directory, Scheduling: scheduling, Clinical: clinical}
}

// PatientDashboardResponse carries the patient's profile, the department
// directory and the patient's appointments.
type PatientDashboardResponse struct {
	Patient      *models.Patient      `json:"patient"`
	Departments  []models.Department  `json:"departments"`
	Appointments []models.Appointment `json:"appointments"`
}

// Dashboard returns the logged-in patient's overview.
func (h *PatientHandler) Dashboard(c *gin.Context) {
	patientID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Patient not authenticated")
		return
	}

	patient, err := h.Directory.PatientByID(patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	departments, err := h.Directory.Departments()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	appointments, err := h.Scheduling.PatientAppointments(patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Dashboard fetched successfully", PatientDashboardResponse{
		Patient:      patient,
		Departments:  departments,
		Appointments: appointments,
	})
}

// ListDepartments returns the department directory.
func (h *PatientHandler) ListDepartments(c *gin.Context) {
	departments, err := h.Directory.Departments()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Departments fetched successfully", departments)
}

// GetDepartment returns a department with its doctors.
func (h *PatientHandler) GetDepartment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dept, err := h.Directory.DepartmentByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Department fetched successfully", dept)
}

// GetDoctor returns a doctor's public profile.
func (h *PatientHandler) GetDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	doctor, err := h.Directory.DoctorByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Doctor fetched successfully", doctor)
}

// BookRequest represents the request body for booking an appointment.
type BookRequest struct {
	DoctorID uint   `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"timeSlot" binding:"required"`
}

// Book creates an appointment for the logged-in patient.
func (h *PatientHandler) Book(c *gin.Context) {
	patientID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Patient not authenticated")
		return
	}

	var req BookRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Scheduling.Book(patientID, req.DoctorID, req.Date, req.TimeSlot)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Created(c, "Booked successfully", appointment)
}

// Cancel cancels one of the logged-in patient's booked appointments.
func (h *PatientHandler) Cancel(c *gin.Context) {
	patientID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Patient not authenticated")
		return
	}
	appointmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := h.Scheduling.CancelByPatient(appointmentID, patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Appointment cancelled", appointment)
}

// History returns the logged-in patient's treatment history.
func (h *PatientHandler) History(c *gin.Context) {
	patientID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Patient not authenticated")
		return
	}

	treatments, err := h.Clinical.PatientHistory(patientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "History fetched successfully", treatments)
}

// UpdateProfileRequest represents the request body for profile updates.
type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Contact  string `json:"contact"`
}

// UpdateProfile updates the logged-in patient's name and contact details.
func (h *PatientHandler) UpdateProfile(c *gin.Context) {
	patientID, ok := middleware.GetPrincipalIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Patient not authenticated")
		return
	}

	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Auth.UpdatePatientProfile(patientID, req.FullName, req.Contact)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Profile updated", patient)
}
