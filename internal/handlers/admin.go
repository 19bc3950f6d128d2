package handlers

import (
	"github.com/gin-gonic/gin"

	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/services"
	"hospital-appointment-server/internal/utils"
)

// AdminHandler handles the admin directory and dashboard surface.
type AdminHandler struct {
	Directory  *services.DirectoryService
	Scheduling *services.SchedulingService
	Clinical   *services.ClinicalService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(directory *services.DirectoryService, scheduling *services.SchedulingService, clinical *services.ClinicalService) *AdminHandler {
	return &AdminHandler{Directory: directory, Scheduling: scheduling, Clinical: clinical}
}

// DashboardResponse carries the admin dashboard data: matching doctors and
// patients with counts, plus every appointment ordered by date.
type DashboardResponse struct {
	DoctorCount  int                  `json:"doctorCount"`
	PatientCount int                  `json:"patientCount"`
	Doctors      []models.Doctor      `json:"doctors"`
	Patients     []models.Patient     `json:"patients"`
	Appointments []models.Appointment `json:"appointments"`
}

// Dashboard returns the directory overview, filtered by the optional
// search_query parameter (case-insensitive substring over doctor name,
// department name, patient username and patient name).
func (h *AdminHandler) Dashboard(c *gin.Context) {
	query := c.Query("search_query")

	doctors, err := h.Directory.SearchDoctors(query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	patients, err := h.Directory.SearchPatients(query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	appointments, err := h.Scheduling.AllAppointments()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Dashboard fetched successfully", DashboardResponse{
		DoctorCount:  len(doctors),
		PatientCount: len(patients),
		Doctors:      doctors,
		Patients:     patients,
		Appointments: appointments,
	})
}

// CreateDoctorRequest represents the request body for creating a doctor.
type CreateDoctorRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Specialization  string `json:"specialization" binding:"required"`
	ExperienceYears int    `json:"experienceYears" binding:"min=0"`
}

// CreateDoctor creates a doctor account with a derived username and the
// default password.
func (h *AdminHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, err := h.Directory.CreateDoctor(req.FullName, req.Specialization, req.ExperienceYears)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Created(c, "Doctor created successfully", doctor)
}

// GetDoctor fetches a doctor for the edit form.
func (h *AdminHandler) GetDoctor(c *gin.Context) {
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

// EditDoctorRequest represents the request body for editing a doctor.
type EditDoctorRequest struct {
	FullName        string `json:"fullName" binding:"required"`
	Specialization  string `json:"specialization" binding:"required"`
	ExperienceYears int    `json:"experienceYears" binding:"min=0"`
}

// EditDoctor updates a doctor's details, re-resolving the department.
func (h *AdminHandler) EditDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req EditDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, err := h.Directory.EditDoctor(id, req.FullName, req.ExperienceYears, req.Specialization)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}

// DeleteDoctor removes a doctor, their availability and their appointments.
func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.Directory.DeleteDoctor(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Doctor deleted successfully", nil)
}

// DeletePatient removes a patient and their appointments.
func (h *AdminHandler) DeletePatient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.Directory.DeletePatient(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Patient deleted successfully", nil)
}

// PatientHistory returns a patient's treatment history for the admin view.
func (h *AdminHandler) PatientHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.Directory.PatientByID(id); err != nil {
		respondServiceError(c, err)
		return
	}

	treatments, err := h.Clinical.PatientHistory(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Patient history fetched successfully", treatments)
}
