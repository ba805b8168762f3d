package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-management-api/internal/db"
	"employee-management-api/internal/db/dbtest"
	"employee-management-api/internal/models"
	"employee-management-api/internal/security"
)

func TestSeedLoadsFixture(t *testing.T) {
	database := dbtest.OpenSeeded(t)

	var employees []models.Employee
	require.NoError(t, database.Order("id ASC").Find(&employees).Error)
	require.Len(t, employees, 7)

	assert.Equal(t, uint(2), employees[0].ID)
	assert.Equal(t, "John Smith", employees[0].Name)
	assert.Nil(t, employees[0].SupervisorID)

	devManager := employees[2]
	assert.Equal(t, uint(4), devManager.ID)
	require.NotNil(t, devManager.SupervisorID)
	assert.Equal(t, uint(3), *devManager.SupervisorID)

	var admin models.User
	require.NoError(t, database.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, uint(1), admin.ID)
	assert.True(t, security.VerifyPassword("admin123", admin.PasswordHash))
}

func TestSeedIsIdempotent(t *testing.T) {
	database := dbtest.OpenSeeded(t)

	require.NoError(t, db.Seed(database))

	var count int64
	require.NoError(t, database.Model(&models.Employee{}).Count(&count).Error)
	assert.Equal(t, int64(7), count)
}

func TestSeedSkipsPopulatedDatabase(t *testing.T) {
	database := dbtest.Open(t)
	require.NoError(t, database.Create(&models.User{Username: "someone", PasswordHash: "x"}).Error)

	require.NoError(t, db.Seed(database))

	var count int64
	require.NoError(t, database.Model(&models.Employee{}).Count(&count).Error)
	assert.Zero(t, count)
}
