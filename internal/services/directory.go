package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospital-appointment-server/internal/models"
)

// DefaultDoctorPassword is assigned to every doctor account the admin
// creates. Doctors change it through the password endpoint.
const DefaultDoctorPassword = "doctor123"

// DirectoryService implements admin-side management of the doctor and
// patient directories.
type DirectoryService struct {
	DB *gorm.DB
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(db *gorm.DB) *DirectoryService {
	return &DirectoryService{DB: db}
}

// CreateDoctor creates a doctor with a username derived from the full name
// and the default password. The specialization resolves to a department,
// created on first use.
func (s *DirectoryService) CreateDoctor(fullName, specialization string, experienceYears int) (*models.Doctor, error) {
	if fullName == "" || specialization == "" {
		return nil, fmt.Errorf("%w: full name and specialization are required", ErrInvalidInput)
	}
	username := models.DoctorUsername(fullName)

	doctor := models.Doctor{
		Username:        username,
		FullName:        fullName,
		ExperienceYears: experienceYears,
	}
	if err := doctor.SetPassword(DefaultDoctorPassword); err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", ErrStorage, err)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		taken, err := usernameTaken(tx, username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: doctor with username %q already exists", ErrConflict, username)
		}

		dept, err := getOrCreateDepartment(tx, specialization)
		if err != nil {
			return err
		}
		doctor.DepartmentID = dept.ID

		if err := tx.Create(&doctor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: doctor with username %q already exists", ErrConflict, username)
			}
			return fmt.Errorf("%w: creating doctor: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Department").First(&doctor, doctor.ID).Error; err != nil {
		return nil, fmt.Errorf("%w: reloading doctor: %v", ErrStorage, err)
	}
	return &doctor, nil
}

// EditDoctor updates a doctor's name, experience and specialization. The
// specialization is re-resolved to a department, created if absent. The
// username stays as assigned at creation.
func (s *DirectoryService) EditDoctor(id uint, fullName string, experienceYears int, specialization string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.DB.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: doctor %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: looking up doctor: %v", ErrStorage, err)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		dept, err := getOrCreateDepartment(tx, specialization)
		if err != nil {
			return err
		}
		doctor.FullName = fullName
		doctor.ExperienceYears = experienceYears
		doctor.DepartmentID = dept.ID
		if err := tx.Save(&doctor).Error; err != nil {
			return fmt.Errorf("%w: saving doctor: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Department").First(&doctor, doctor.ID).Error; err != nil {
		return nil, fmt.Errorf("%w: reloading doctor: %v", ErrStorage, err)
	}
	return &doctor, nil
}

// DeleteDoctor removes a doctor along with their availability rows and their
// appointments, including any treatments recorded for those appointments.
func (s *DirectoryService) DeleteDoctor(id uint) error {
	var doctor models.Doctor
	if err := s.DB.First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: doctor %d", ErrNotFound, id)
		}
		return fmt.Errorf("%w: looking up doctor: %v", ErrStorage, err)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&models.DoctorAvailability{}).Error; err != nil {
			return fmt.Errorf("%w: deleting availability: %v", ErrStorage, err)
		}
		if err := deleteAppointments(tx, "doctor_id = ?", id); err != nil {
			return err
		}
		if err := tx.Delete(&doctor).Error; err != nil {
			return fmt.Errorf("%w: deleting doctor: %v", ErrStorage, err)
		}
		return nil
	})
}

// DeletePatient removes a patient along with their appointments and any
// treatments recorded for those appointments.
func (s *DirectoryService) DeletePatient(id uint) error {
	var patient models.Patient
	if err := s.DB.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: patient %d", ErrNotFound, id)
		}
		return fmt.Errorf("%w: looking up patient: %v", ErrStorage, err)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteAppointments(tx, "patient_id = ?", id); err != nil {
			return err
		}
		if err := tx.Delete(&patient).Error; err != nil {
			return fmt.Errorf("%w: deleting patient: %v", ErrStorage, err)
		}
		return nil
	})
}

// DoctorByID fetches a doctor with their department.
func (s *DirectoryService) DoctorByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := s.DB.Preload("Department").First(&doctor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: doctor %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: looking up doctor: %v", ErrStorage, err)
	}
	return &doctor, nil
}

// PatientByID fetches a patient.
func (s *DirectoryService) PatientByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := s.DB.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: patient %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: looking up patient: %v", ErrStorage, err)
	}
	return &patient, nil
}

// Departments lists all departments with their doctors.
func (s *DirectoryService) Departments() ([]models.Department, error) {
	var departments []models.Department
	if err := s.DB.Preload("Doctors").Order("name asc").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("%w: listing departments: %v", ErrStorage, err)
	}
	return departments, nil
}

// DepartmentByID fetches a department with its doctors.
func (s *DirectoryService) DepartmentByID(id uint) (*models.Department, error) {
	var dept models.Department
	if err := s.DB.Preload("Doctors").First(&dept, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: department %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: looking up department: %v", ErrStorage, err)
	}
	return &dept, nil
}

// SearchDoctors returns doctors whose full name or department name contains
// the query, case-insensitively. An empty query returns all doctors.
func (s *DirectoryService) SearchDoctors(query string) ([]models.Doctor, error) {
	db := s.DB.Preload("Department").Order("doctors.id asc")
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Select("doctors.*").
			Joins("LEFT JOIN departments ON departments.id = doctors.department_id").
			Where("LOWER(doctors.full_name) LIKE LOWER(?) OR LOWER(departments.name) LIKE LOWER(?)", pattern, pattern)
	}
	var doctors []models.Doctor
	if err := db.Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("%w: searching doctors: %v", ErrStorage, err)
	}
	return doctors, nil
}

// SearchPatients returns patients whose username or full name contains the
// query, case-insensitively. An empty query returns all patients.
func (s *DirectoryService) SearchPatients(query string) ([]models.Patient, error) {
	db := s.DB.Order("id asc")
	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?)", pattern, pattern)
	}
	var patients []models.Patient
	if err := db.Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("%w: searching patients: %v", ErrStorage, err)
	}
	return patients, nil
}

// getOrCreateDepartment resolves a department by name, inserting it on first
// use. The insert uses ON CONFLICT DO NOTHING so two concurrent callers
// racing on a new name converge on a single row.
func getOrCreateDepartment(tx *gorm.DB, name string) (*models.Department, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: department name is required", ErrInvalidInput)
	}

	dept := models.Department{Name: name}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dept).Error; err != nil {
		return nil, fmt.Errorf("%w: creating department: %v", ErrStorage, err)
	}
	// A conflict leaves dept.ID zero; fetch the winning row either way.
	if err := tx.Where("name = ?", name).First(&dept).Error; err != nil {
		return nil, fmt.Errorf("%w: fetching department: %v", ErrStorage, err)
	}
	return &dept, nil
}

// deleteAppointments removes appointments matching the condition together
// with their treatments.
func deleteAppointments(tx *gorm.DB, cond string, arg interface{}) error {
	var ids []uint
	if err := tx.Model(&models.Appointment{}).Where(cond, arg).Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("%w: listing appointments: %v", ErrStorage, err)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("appointment_id IN ?", ids).Delete(&models.Treatment{}).Error; err != nil {
		return fmt.Errorf("%w: deleting treatments: %v", ErrStorage, err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Appointment{}).Error; err != nil {
		return fmt.Errorf("%w: deleting appointments: %v", ErrStorage, err)
	}
	return nil
}
