package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Doctor represents a doctor account. Doctors are created by the admin with a
// username derived from their full name and a default password.
type Doctor struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Username        string `gorm:"uniqueIndex;size:80;not null" json:"username"`
	PasswordHash    string `gorm:"size:255;not null" json:"-"`
	FullName        string `gorm:"size:120;not null" json:"fullName"`
	Email           string `gorm:"size:120" json:"email,omitempty"`
	ExperienceYears int    `gorm:"default:0" json:"experienceYears"`
	DepartmentID    uint   `gorm:"index" json:"departmentId"`

	Department   Department           `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Appointments []Appointment        `gorm:"foreignKey:DoctorID" json:"-"`
	Availability []DoctorAvailability `gorm:"foreignKey:DoctorID" json:"-"`
}

// DoctorUsername derives a login username from a doctor's full name:
// lowercased, spaces replaced with dots ("Jane Doe" -> "jane.doe").
func DoctorUsername(fullName string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(fullName)), " ", ".")
}

// SetPassword hashes a password and sets it on the doctor.
func (d *Doctor) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.PasswordHash = string(hashed)
	return nil
}

// CheckPassword compares a password with the doctor's hashed password.
func (d *Doctor) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)) == nil
}
