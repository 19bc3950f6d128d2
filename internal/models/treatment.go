package models

// Treatment holds the clinical record for a single appointment. At most one
// row exists per appointment; recording twice overwrites the existing row.
type Treatment struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Diagnosis     string `gorm:"type:text" json:"diagnosis"`
	Prescription  string `gorm:"type:text" json:"prescription"`
	Medicines     string `gorm:"type:text" json:"medicines"`
	AppointmentID uint   `gorm:"uniqueIndex;not null" json:"appointmentId"`

	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}
