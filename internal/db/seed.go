package db

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"employee-management-api/internal/models"
	"employee-management-api/internal/security"
)

//go:embed seed.yaml
var seedFixture []byte

type seedData struct {
	Users []struct {
		ID       uint   `yaml:"id"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Employees []struct {
		ID           uint   `yaml:"id"`
		Name         string `yaml:"name"`
		Email        string `yaml:"email"`
		SupervisorID *uint  `yaml:"supervisor_id"`
	} `yaml:"employees"`
}

// Seed loads the bundled admin user and sample hierarchy into an empty database.
// It does nothing when either table already holds rows.
func Seed(database *gorm.DB) error {
	var data seedData
	if err := yaml.Unmarshal(seedFixture, &data); err != nil {
		return fmt.Errorf("parse seed fixture: %w", err)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		var userCount, employeeCount int64
		if err := tx.Model(&models.User{}).Count(&userCount).Error; err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		if err := tx.Model(&models.Employee{}).Count(&employeeCount).Error; err != nil {
			return fmt.Errorf("count employees: %w", err)
		}
		if userCount > 0 || employeeCount > 0 {
			return nil
		}

		now := time.Now().UTC()

		for _, u := range data.Users {
			hash, err := security.HashPassword(u.Password)
			if err != nil {
				return err
			}
			user := models.User{
				ID:           u.ID,
				Username:     u.Username,
				PasswordHash: hash,
				CreatedAt:    now,
			}
			if err := tx.Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
		}

		// fixture lists supervisors before their reports
		for _, e := range data.Employees {
			employee := models.Employee{
				ID:           e.ID,
				Name:         e.Name,
				Email:        e.Email,
				SupervisorID: e.SupervisorID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Omit("Supervisor", "Subordinates").Create(&employee).Error; err != nil {
				return fmt.Errorf("seed employee %d: %w", e.ID, err)
			}
		}

		return resetSequences(tx)
	})
}

// resetSequences moves postgres serial counters past the explicit seed ids.
func resetSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range []string{"users", "employees"} {
		statement := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT COALESCE(MAX(id), 1) FROM %s))",
			table, table,
		)
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}
	return nil
}
