package models

import (
	"time"
)

// DoctorAvailability declares whether a doctor is open for a date and time
// slot. Booking does not consult these rows; they are informational for the
// patient-facing schedule view.
type DoctorAvailability struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"not null;index:idx_avail_slot,unique" json:"date"`
	TimeSlot    string    `gorm:"size:30;not null;index:idx_avail_slot,unique" json:"timeSlot"`
	IsAvailable bool      `gorm:"not null;default:true" json:"isAvailable"`
	DoctorID    uint      `gorm:"not null;index:idx_avail_slot,unique" json:"doctorId"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}
