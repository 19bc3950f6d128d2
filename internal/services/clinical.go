package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hospital-appointment-server/internal/models"
)

// ClinicalService implements the treatment workflow and patient history
// queries.
type ClinicalService struct {
	DB *gorm.DB
}

// NewClinicalService creates a new ClinicalService.
func NewClinicalService(db *gorm.DB) *ClinicalService {
	return &ClinicalService{DB: db}
}

// RecordTreatment writes the clinical record for an appointment. Only the
// owning doctor may record; the single treatment row per appointment is
// created on first call and overwritten on later calls, and the appointment
// is forced to Completed either way. Cancelled appointments keep their slot
// released even though recording completes them.
func (s *ClinicalService) RecordTreatment(appointmentID, doctorID uint, diagnosis, prescription, medicines string) (*models.Treatment, error) {
	var treatment models.Treatment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: appointment %d", ErrNotFound, appointmentID)
			}
			return fmt.Errorf("%w: looking up appointment: %v", ErrStorage, err)
		}
		if appointment.DoctorID != doctorID {
			return fmt.Errorf("%w: appointment belongs to another doctor", ErrAuthorization)
		}

		err := tx.Where("appointment_id = ?", appointmentID).First(&treatment).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			treatment = models.Treatment{AppointmentID: appointmentID}
		case err != nil:
			return fmt.Errorf("%w: looking up treatment: %v", ErrStorage, err)
		}

		treatment.Diagnosis = diagnosis
		treatment.Prescription = prescription
		treatment.Medicines = medicines
		if err := tx.Save(&treatment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: treatment already exists for appointment %d", ErrConflict, appointmentID)
			}
			return fmt.Errorf("%w: saving treatment: %v", ErrStorage, err)
		}

		if appointment.Status != models.StatusCompleted {
			if err := tx.Model(&appointment).Update("status", models.StatusCompleted).Error; err != nil {
				return fmt.Errorf("%w: completing appointment: %v", ErrStorage, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &treatment, nil
}

// TreatmentForAppointment fetches the treatment recorded for one of the
// doctor's appointments, or ErrNotFound when nothing has been recorded yet.
func (s *ClinicalService) TreatmentForAppointment(appointmentID, doctorID uint) (*models.Treatment, error) {
	var appointment models.Appointment
	if err := s.DB.First(&appointment, appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, appointmentID)
		}
		return nil, fmt.Errorf("%w: looking up appointment: %v", ErrStorage, err)
	}
	if appointment.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: appointment belongs to another doctor", ErrAuthorization)
	}

	var treatment models.Treatment
	if err := s.DB.Where("appointment_id = ?", appointmentID).First(&treatment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no treatment for appointment %d", ErrNotFound, appointmentID)
		}
		return nil, fmt.Errorf("%w: looking up treatment: %v", ErrStorage, err)
	}
	return &treatment, nil
}

// PatientHistory returns every treatment recorded for a patient, joined
// through their appointments, newest appointment first.
func (s *ClinicalService) PatientHistory(patientID uint) ([]models.Treatment, error) {
	var treatments []models.Treatment
	err := s.DB.Preload("Appointment").Preload("Appointment.Doctor").
		Select("treatments.*").
		Joins("JOIN appointments ON appointments.id = treatments.appointment_id").
		Where("appointments.patient_id = ?", patientID).
		Order("appointments.appointment_date desc, treatments.id desc").
		Find(&treatments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: loading patient history: %v", ErrStorage, err)
	}
	return treatments, nil
}
