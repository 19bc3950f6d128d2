package models

// Department represents a hospital department or specialization,
// e.g. "Cardiology". Departments are created lazily when an admin assigns a
// new specialization name to a doctor.
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`

	Doctors []Doctor `gorm:"foreignKey:DepartmentID" json:"doctors,omitempty"`
}
