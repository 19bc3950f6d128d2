package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-appointment-server/internal/models"
)

func TestRecordTreatmentCreatesOneRowAndCompletes(t *testing.T) {
	db := openTestDB(t)
	scheduling := NewSchedulingService(db)
	clinical := NewClinicalService(db)
	doctor := seedDoctor(t, db, "Jane Doe", "Cardiology")
	patient := seedPatient(t, db, "alice")

	appt, err := scheduling.Book(patient.ID, doctor.ID, "2024-01-10", "08:00-12:00")
	require.NoError(t, err)

	first, err := clinical.RecordTreatment(appt.ID, doctor.ID, "Flu", "Rest", "Paracetamol")
	require.NoError(t, err)
	assert.Equal(t, "Flu", first.Diagnosis)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, appt.ID).Error)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	// Recording again overwrites the single row, never creates a second.
	second, err := clinical.RecordTreatment(appt.ID, doctor.ID, "Severe flu", "Rest and fluids", "Ibuprofen")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Severe flu", second.Diagnosis)

	var count int64
	require.NoError(t, db.Model(&models.Treatment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t, db.First(&stored, appt.ID).Error)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestRecordTreatmentOwnership(t *testing.T) {
	db := openTestDB(t)
	scheduling := NewSchedulingService(db)
	clinical := NewClinicalService(db)
	jane := seedDoctor(t, db, "Jane Doe", "Cardiology")
	john := seedDoctor(t, db, "John Smith", "Oncology")
	patient := seedPatient(t, db, "alice")

	appt, err := scheduling.Book(patient.ID, jane.ID, "2024-01-10", "08:00-12:00")
	require.NoError(t, err)

	_, err = clinical.RecordTreatment(appt.ID, john.ID, "Flu", "", "")
	assert.ErrorIs(t, err, ErrAuthorization)

	_, err = clinical.RecordTreatment(9999, jane.ID, "Flu", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTreatmentForAppointment(t *testing.T) {
	db := openTestDB(t)
	scheduling := NewSchedulingService(db)
	clinical := NewClinicalService(db)
	jane := seedDoctor(t, db, "Jane Doe", "Cardiology")
	john := seedDoctor(t, db, "John Smith", "Oncology")
	patient := seedPatient(t, db, "alice")

	appt, err := scheduling.Book(patient.ID, jane.ID, "2024-01-10", "08:00-12:00")
	require.NoError(t, err)

	_, err = clinical.TreatmentForAppointment(appt.ID, jane.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = clinical.RecordTreatment(appt.ID, jane.ID, "Flu", "Rest", "")
	require.NoError(t, err)

	treatment, err := clinical.TreatmentForAppointment(appt.ID, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flu", treatment.Diagnosis)

	_, err = clinical.TreatmentForAppointment(appt.ID, john.ID)
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestPatientHistoryOrderedNewestFirst(t *testing.T) {
	db := openTestDB(t)
	scheduling := NewSchedulingService(db)
	clinical := NewClinicalService(db)
	doctor := seedDoctor(t, db, "Jane Doe", "Cardiology")
	alice := seedPatient(t, db, "alice")
	bob := seedPatient(t, db, "bob")

	early, err := scheduling.Book(alice.ID, doctor.ID, "2024-01-10", "08:00-12:00")
	require.NoError(t, err)
	late, err := scheduling.Book(alice.ID, doctor.ID, "2024-02-01", "08:00-12:00")
	require.NoError(t, err)
	other, err := scheduling.Book(bob.ID, doctor.ID, "2024-03-01", "08:00-12:00")
	require.NoError(t, err)

	_, err = clinical.RecordTreatment(early.ID, doctor.ID, "Flu", "", "")
	require.NoError(t, err)
	_, err = clinical.RecordTreatment(late.ID, doctor.ID, "Checkup", "", "")
	require.NoError(t, err)
	_, err = clinical.RecordTreatment(other.ID, doctor.ID, "Sprain", "", "")
	require.NoError(t, err)

	history, err := clinical.PatientHistory(alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Checkup", history[0].Diagnosis)
	assert.Equal(t, "Flu", history[1].Diagnosis)
	assert.Equal(t, "jane.doe", history[0].Appointment.Doctor.Username)
}

// TestBookingScenario walks the end-to-end flow: the admin creates a doctor,
// a patient books a slot, the doctor records a treatment, and rebooking the
// held slot conflicts.
func TestBookingScenario(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, models.EnsureAdmin(db, "admin", "admin"))

	auth := NewAuthService(db)
	directory := NewDirectoryService(db)
	scheduling := NewSchedulingService(db)
	clinical := NewClinicalService(db)

	doctor, err := directory.CreateDoctor("Jane Doe", "Cardiology", 8)
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", doctor.Username)
	assert.Equal(t, "Cardiology", doctor.Department.Name)

	alice, err := auth.RegisterPatient("alice", "secret123", "Alice A", "555-0100")
	require.NoError(t, err)

	appt, err := scheduling.Book(alice.ID, doctor.ID, "2024-01-10", "08:00-12:00")
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, appt.Status)

	_, err = clinical.RecordTreatment(appt.ID, doctor.ID, "Flu", "Rest", "Paracetamol")
	require.NoError(t, err)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, appt.ID).Error)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	_, err = scheduling.Book(alice.ID, doctor.ID, "2024-01-10", "08:00-12:00")
	assert.ErrorIs(t, err, ErrConflict)
}
