package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"employee-management-api/internal/models"
)

type EmployeeStore struct {
	db *gorm.DB
}

func NewEmployeeStore(db *gorm.DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// ListAll returns every employee ordered by name, ties broken by id.
func (s *EmployeeStore) ListAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	return employees, nil
}

func (s *EmployeeStore) GetByID(ctx context.Context, id uint) (models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Employee{}, ErrNotFound
		}
		return models.Employee{}, fmt.Errorf("load employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeStore) Insert(ctx context.Context, employee *models.Employee) error {
	if err := s.db.WithContext(ctx).Omit("Supervisor", "Subordinates").Create(employee).Error; err != nil {
		return mapDatabaseError(err)
	}
	return nil
}

// Update replaces name, email, supervisor and update time of an existing employee
// and reloads it into employee.
func (s *EmployeeStore) Update(ctx context.Context, employee *models.Employee) error {
	result := s.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", employee.ID).
		Updates(map[string]interface{}{
			"name":          employee.Name,
			"email":         employee.Email,
			"supervisor_id": employee.SupervisorID,
			"updated_at":    employee.UpdatedAt,
		})
	if result.Error != nil {
		return mapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	if err := s.db.WithContext(ctx).First(employee, employee.ID).Error; err != nil {
		return fmt.Errorf("reload employee: %w", err)
	}
	return nil
}

func (s *EmployeeStore) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check employee existence: %w", err)
	}
	return count > 0, nil
}
