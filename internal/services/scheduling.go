package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-appointment-server/internal/models"
)

// DateLayout is the wire format for appointment and availability dates.
const DateLayout = "2006-01-02"

// Appointment actions a doctor can take.
const (
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

// SchedulingService implements booking, cancellation and availability
// management.
type SchedulingService struct {
	DB *gorm.DB
}

// NewSchedulingService creates a new SchedulingService.
func NewSchedulingService(db *gorm.DB) *SchedulingService {
	return &SchedulingService{DB: db}
}

// Book creates an appointment for a patient with a doctor on a date and time
// slot. The slot must not be held by another active appointment; a cancelled
// appointment frees its slot. Concurrent bookings for the same slot are
// resolved by the unique index on the slot key, so the losing insert fails
// with ErrConflict at commit time.
func (s *SchedulingService) Book(patientID, doctorID uint, dateStr, timeSlot string) (*models.Appointment, error) {
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, dateStr)
	}
	if timeSlot == "" {
		return nil, fmt.Errorf("%w: time slot is required", ErrInvalidInput)
	}

	var doctor models.Doctor
	if err := s.DB.First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: doctor %d", ErrNotFound, doctorID)
		}
		return nil, fmt.Errorf("%w: looking up doctor: %v", ErrStorage, err)
	}

	slotKey := models.SlotKeyFor(doctorID, date, timeSlot)
	appointment := models.Appointment{
		AppointmentDate: date,
		TimeSlot:        timeSlot,
		Status:          models.StatusBooked,
		SlotKey:         &slotKey,
		PatientID:       patientID,
		DoctorID:        doctorID,
	}

	if err := s.DB.Create(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: slot %s on %s is already booked", ErrConflict, timeSlot, dateStr)
		}
		return nil, fmt.Errorf("%w: creating appointment: %v", ErrStorage, err)
	}
	return &appointment, nil
}

// CancelByPatient cancels a booked appointment on behalf of its owning
// patient. Non-owners are denied; an appointment in a terminal status stays
// untouched, so a second cancel is a rejected no-op rather than a double
// transition.
func (s *SchedulingService) CancelByPatient(appointmentID, patientID uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: appointment %d", ErrNotFound, appointmentID)
			}
			return fmt.Errorf("%w: looking up appointment: %v", ErrStorage, err)
		}
		if appointment.PatientID != patientID {
			return fmt.Errorf("%w: appointment belongs to another patient", ErrAuthorization)
		}
		if appointment.Status != models.StatusBooked {
			return fmt.Errorf("%w: appointment is %s", ErrConflict, appointment.Status)
		}
		return cancelLocked(tx, &appointment)
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CompleteOrCancel applies a doctor's action to one of their booked
// appointments. Only the owning doctor may act; terminal statuses reject.
func (s *SchedulingService) CompleteOrCancel(appointmentID, doctorID uint, action string) (*models.Appointment, error) {
	if action != ActionComplete && action != ActionCancel {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}

	var appointment models.Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appointment, appointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: appointment %d", ErrNotFound, appointmentID)
			}
			return fmt.Errorf("%w: looking up appointment: %v", ErrStorage, err)
		}
		if appointment.DoctorID != doctorID {
			return fmt.Errorf("%w: appointment belongs to another doctor", ErrAuthorization)
		}
		if appointment.Status != models.StatusBooked {
			return fmt.Errorf("%w: appointment is %s", ErrConflict, appointment.Status)
		}

		if action == ActionCancel {
			return cancelLocked(tx, &appointment)
		}
		appointment.Status = models.StatusCompleted
		if err := tx.Save(&appointment).Error; err != nil {
			return fmt.Errorf("%w: saving appointment: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// SetAvailability upserts a doctor's availability declaration for a date and
// time slot.
func (s *SchedulingService) SetAvailability(doctorID uint, dateStr, timeSlot string, isAvailable bool) (*models.DoctorAvailability, error) {
	date, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, dateStr)
	}
	if timeSlot == "" {
		return nil, fmt.Errorf("%w: time slot is required", ErrInvalidInput)
	}

	availability := models.DoctorAvailability{
		Date:        date,
		TimeSlot:    timeSlot,
		IsAvailable: isAvailable,
		DoctorID:    doctorID,
	}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "time_slot"}, {Name: "doctor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_available"}),
	}).Create(&availability).Error
	if err != nil {
		return nil, fmt.Errorf("%w: saving availability: %v", ErrStorage, err)
	}

	if err := s.DB.Where("doctor_id = ? AND date = ? AND time_slot = ?", doctorID, date, timeSlot).
		First(&availability).Error; err != nil {
		return nil, fmt.Errorf("%w: reloading availability: %v", ErrStorage, err)
	}
	return &availability, nil
}

// ListAvailability returns a doctor's availability declarations ordered by
// date and slot.
func (s *SchedulingService) ListAvailability(doctorID uint) ([]models.DoctorAvailability, error) {
	var rows []models.DoctorAvailability
	if err := s.DB.Where("doctor_id = ?", doctorID).Order("date asc, time_slot asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: listing availability: %v", ErrStorage, err)
	}
	return rows, nil
}

// DoctorAppointments returns a doctor's appointments with patients preloaded,
// earliest date first.
func (s *SchedulingService) DoctorAppointments(doctorID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.Preload("Patient").Preload("Treatment").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date asc, id asc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing doctor appointments: %v", ErrStorage, err)
	}
	return appointments, nil
}

// PatientAppointments returns a patient's appointments with doctors
// preloaded, earliest date first.
func (s *SchedulingService) PatientAppointments(patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.Preload("Doctor").Preload("Doctor.Department").
		Where("patient_id = ?", patientID).
		Order("appointment_date asc, id asc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing patient appointments: %v", ErrStorage, err)
	}
	return appointments, nil
}

// AllAppointments returns every appointment for the admin dashboard, earliest
// date first.
func (s *SchedulingService) AllAppointments() ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.DB.Preload("Patient").Preload("Doctor").
		Order("appointment_date asc, id asc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing appointments: %v", ErrStorage, err)
	}
	return appointments, nil
}

// AssignedPatients returns the distinct patients who hold appointments with
// the doctor.
func (s *SchedulingService) AssignedPatients(doctorID uint) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.DB.Distinct("patients.*").
		Joins("JOIN appointments ON appointments.patient_id = patients.id").
		Where("appointments.doctor_id = ?", doctorID).
		Order("patients.id asc").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing assigned patients: %v", ErrStorage, err)
	}
	return patients, nil
}

// cancelLocked marks an appointment cancelled and releases its slot key.
func cancelLocked(tx *gorm.DB, appointment *models.Appointment) error {
	appointment.Status = models.StatusCancelled
	appointment.SlotKey = nil
	err := tx.Model(appointment).Select("status", "slot_key").
		Updates(map[string]interface{}{"status": models.StatusCancelled, "slot_key": nil}).Error
	if err != nil {
		return fmt.Errorf("%w: cancelling appointment: %v", ErrStorage, err)
	}
	return nil
}
