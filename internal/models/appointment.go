package models

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Terminal reports whether no further status transition is permitted.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment links one Patient and one Doctor for a date and time slot.
//
// SlotKey holds "doctorID|date|slot" while the appointment is active and is
// cleared when it is cancelled. The unique index on it makes "at most one
// non-cancelled appointment per doctor/date/slot" a storage-level guarantee:
// concurrent bookings for the same slot lose at commit time, and cancelled
// appointments free the slot for rebooking.
type Appointment struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	AppointmentDate time.Time         `gorm:"not null" json:"appointmentDate"`
	TimeSlot        string            `gorm:"size:30;not null" json:"timeSlot"`
	Status          AppointmentStatus `gorm:"size:20;not null;default:'Booked'" json:"status"`
	SlotKey         *string           `gorm:"uniqueIndex;size:64" json:"-"`
	PatientID       uint              `gorm:"index;not null" json:"patientId"`
	DoctorID        uint              `gorm:"index;not null" json:"doctorId"`

	Patient   Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    Doctor     `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Treatment *Treatment `gorm:"foreignKey:AppointmentID" json:"treatment,omitempty"`
}

// SlotKeyFor builds the slot occupancy key for a doctor, date and time slot.
func SlotKeyFor(doctorID uint, date time.Time, timeSlot string) string {
	return fmt.Sprintf("%d|%s|%s", doctorID, date.Format("2006-01-02"), timeSlot)
}
