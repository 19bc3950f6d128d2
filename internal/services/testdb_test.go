package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-appointment-server/internal/models"
)

// openTestDB opens an isolated in-memory database with the full schema so
// unique indexes behave as they do in production.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

// seedDoctor creates a doctor through the directory service.
func seedDoctor(t *testing.T, db *gorm.DB, fullName, specialization string) *models.Doctor {
	t.Helper()
	doctor, err := NewDirectoryService(db).CreateDoctor(fullName, specialization, 5)
	if err != nil {
		t.Fatalf("seeding doctor %q: %v", fullName, err)
	}
	return doctor
}

// seedPatient creates a patient through the auth service.
func seedPatient(t *testing.T, db *gorm.DB, username string) *models.Patient {
	t.Helper()
	patient, err := NewAuthService(db).RegisterPatient(username, "secret123", username+" full", "555-0100")
	if err != nil {
		t.Fatalf("seeding patient %q: %v", username, err)
	}
	return patient
}
