package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Patient represents a patient account. Patients register themselves.
type Patient struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:80;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FullName     string `gorm:"size:120" json:"fullName"`
	Contact      string `gorm:"size:20" json:"contact"`

	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}

// SetPassword hashes a password and sets it on the patient.
func (p *Patient) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hashed)
	return nil
}

// CheckPassword compares a password with the patient's hashed password.
func (p *Patient) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}
