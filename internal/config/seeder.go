package config

import (
	"log"

	"gorm.io/gorm"

	"orgpulse-survey/internal/adapters/persistence/models"
	"orgpulse-survey/internal/pkg/password"
)

// SeedMasterData seeds initial master data and the first admin account
func SeedMasterData(db *gorm.DB) error {
	if err := seedJobs(db); err != nil {
		return err
	}

	if err := seedDepartments(db); err != nil {
		return err
	}

	if err := seedAdminUser(db); err != nil {
		return err
	}

	log.Println("Master data seeded")
	return nil
}

func seedJobs(db *gorm.DB) error {
	// Codes 1-3 are manager grades used by the manager statistics.
	jobs := []models.Job{
		{Code: 1, Name: "Executive"},
		{Code: 2, Name: "General Manager"},
		{Code: 3, Name: "Team Manager"},
		{Code: 4, Name: "Senior Staff"},
		{Code: 5, Name: "Staff"},
	}

	for _, job := range jobs {
		var count int64
		db.Model(&models.Job{}).Where("code = ?", job.Code).Count(&count)
		if count == 0 {
			if err := db.Create(&job).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedDepartments(db *gorm.DB) error {
	departments := []models.Department{
		{Name: "Management"},
		{Name: "Sales"},
		{Name: "Engineering"},
		{Name: "Human Resources"},
	}

	for _, dept := range departments {
		var count int64
		db.Model(&models.Department{}).Where("name = ?", dept.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&dept).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	email := getEnv("ADMIN_EMAIL", "admin@orgpulse.local")
	plain := getEnv("ADMIN_PASSWORD", "ChangeMe1234")

	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:    email,
		Password: hash,
		Name:     "Administrator",
		Role:     models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded initial admin account: %s", email)
	return nil
}
