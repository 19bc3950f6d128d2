package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hospital-appointment-server/internal/models"
)

// AuthService implements identity lookup and account management over the
// three independent principal tables.
type AuthService struct {
	DB *gorm.DB
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Principal identifies an authenticated account.
type Principal struct {
	ID   uint
	Role models.Role
}

// Authenticate checks the candidate username against the Admin, Doctor and
// Patient tables in that fixed order and returns the first match whose
// password verifies. Returns ErrAuthentication when nothing matches.
func (s *AuthService) Authenticate(username, password string) (*Principal, error) {
	var admin models.Admin
	err := s.DB.Where("username = ?", username).First(&admin).Error
	if err == nil && admin.CheckPassword(password) {
		return &Principal{ID: admin.ID, Role: models.RoleAdmin}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: looking up admin: %v", ErrStorage, err)
	}

	var doctor models.Doctor
	err = s.DB.Where("username = ?", username).First(&doctor).Error
	if err == nil && doctor.CheckPassword(password) {
		return &Principal{ID: doctor.ID, Role: models.RoleDoctor}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: looking up doctor: %v", ErrStorage, err)
	}

	var patient models.Patient
	err = s.DB.Where("username = ?", username).First(&patient).Error
	if err == nil && patient.CheckPassword(password) {
		return &Principal{ID: patient.ID, Role: models.RolePatient}, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: looking up patient: %v", ErrStorage, err)
	}

	return nil, ErrAuthentication
}

// RegisterPatient creates a new patient account. The username must be free
// across all three principal tables.
func (s *AuthService) RegisterPatient(username, password, fullName, contact string) (*models.Patient, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	patient := models.Patient{
		Username: username,
		FullName: fullName,
		Contact:  contact,
	}
	if err := patient.SetPassword(password); err != nil {
		return nil, fmt.Errorf("%w: hashing password: %v", ErrStorage, err)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		taken, err := usernameTaken(tx, username)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: username %q is already taken", ErrConflict, username)
		}
		if err := tx.Create(&patient).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: username %q is already taken", ErrConflict, username)
			}
			return fmt.Errorf("%w: creating patient: %v", ErrStorage, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// ChangeDoctorPassword updates a doctor's password after verifying the
// current one.
func (s *AuthService) ChangeDoctorPassword(doctorID uint, current, next string) error {
	if next == "" {
		return fmt.Errorf("%w: new password is required", ErrInvalidInput)
	}

	var doctor models.Doctor
	if err := s.DB.First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: doctor %d", ErrNotFound, doctorID)
		}
		return fmt.Errorf("%w: looking up doctor: %v", ErrStorage, err)
	}
	if !doctor.CheckPassword(current) {
		return ErrAuthentication
	}

	if err := doctor.SetPassword(next); err != nil {
		return fmt.Errorf("%w: hashing password: %v", ErrStorage, err)
	}
	if err := s.DB.Save(&doctor).Error; err != nil {
		return fmt.Errorf("%w: saving doctor: %v", ErrStorage, err)
	}
	return nil
}

// UpdatePatientProfile updates a patient's own name and contact details.
func (s *AuthService) UpdatePatientProfile(patientID uint, fullName, contact string) (*models.Patient, error) {
	var patient models.Patient
	if err := s.DB.First(&patient, patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: patient %d", ErrNotFound, patientID)
		}
		return nil, fmt.Errorf("%w: looking up patient: %v", ErrStorage, err)
	}

	patient.FullName = fullName
	patient.Contact = contact
	if err := s.DB.Save(&patient).Error; err != nil {
		return nil, fmt.Errorf("%w: saving patient: %v", ErrStorage, err)
	}
	return &patient, nil
}

// usernameTaken reports whether a username exists in any principal table.
func usernameTaken(tx *gorm.DB, username string) (bool, error) {
	for _, model := range []interface{}{&models.Admin{}, &models.Doctor{}, &models.Patient{}} {
		var count int64
		if err := tx.Model(model).Where("username = ?", username).Count(&count).Error; err != nil {
			return false, fmt.Errorf("%w: checking username: %v", ErrStorage, err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
