package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"employee-management-api/internal/apperror"
	"employee-management-api/internal/hierarchy"
	"employee-management-api/internal/models"
	"employee-management-api/internal/store"
)

const employeeEntity = "Employee"

type EmployeeService struct {
	employees EmployeeStore
	now       func() time.Time
}

func NewEmployeeService(employees EmployeeStore) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *EmployeeService) ListEmployees(ctx context.Context) ([]EmployeeSummaryDTO, error) {
	employees, err := s.employees.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]EmployeeSummaryDTO, 0, len(employees))
	for _, employee := range employees {
		result = append(result, employeeToSummary(employee))
	}
	return result, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (EmployeeDetailDTO, error) {
	var (
		employee models.Employee
		snapshot []models.Employee
	)

	// both reads run to completion; a missing employee is reported after they finish
	var group errgroup.Group
	group.Go(func() error {
		var err error
		employee, err = s.employees.GetByID(ctx, id)
		return err
	})
	group.Go(func() error {
		var err error
		snapshot, err = s.employees.ListAll(ctx)
		return err
	})
	if err := group.Wait(); err != nil {
		return EmployeeDetailDTO{}, mapStoreError(err, id)
	}

	count, err := countSubordinates(id, snapshot)
	if err != nil {
		return EmployeeDetailDTO{}, err
	}

	return employeeToDetail(employee, count), nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (EmployeeDetailDTO, error) {
	if input.SupervisorID != nil {
		if err := s.ensureEmployeeExists(ctx, *input.SupervisorID); err != nil {
			return EmployeeDetailDTO{}, err
		}
	}

	now := s.now()
	employee := models.Employee{
		Name:         input.Name,
		Email:        input.Email,
		SupervisorID: input.SupervisorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.employees.Insert(ctx, &employee); err != nil {
		return EmployeeDetailDTO{}, err
	}

	// a new employee cannot have reports yet
	return employeeToDetail(employee, 0), nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, input UpdateEmployeeInput) (EmployeeDetailDTO, error) {
	if input.SupervisorID != nil && *input.SupervisorID == input.ID {
		return EmployeeDetailDTO{}, apperror.New(apperror.CodeValidation, "An employee cannot be their own supervisor")
	}

	if _, err := s.employees.GetByID(ctx, input.ID); err != nil {
		return EmployeeDetailDTO{}, mapStoreError(err, input.ID)
	}

	if input.SupervisorID != nil {
		if err := s.ensureEmployeeExists(ctx, *input.SupervisorID); err != nil {
			return EmployeeDetailDTO{}, err
		}

		snapshot, err := s.employees.ListAll(ctx)
		if err != nil {
			return EmployeeDetailDTO{}, err
		}
		if hierarchy.WouldCreateCycle(input.ID, *input.SupervisorID, snapshot) {
			return EmployeeDetailDTO{}, apperror.New(apperror.CodeValidation, "Assigning this supervisor would create a cycle in the hierarchy")
		}
	}

	employee := models.Employee{
		ID:           input.ID,
		Name:         input.Name,
		Email:        input.Email,
		SupervisorID: input.SupervisorID,
		UpdatedAt:    s.now(),
	}
	if err := s.employees.Update(ctx, &employee); err != nil {
		return EmployeeDetailDTO{}, mapStoreError(err, input.ID)
	}

	snapshot, err := s.employees.ListAll(ctx)
	if err != nil {
		return EmployeeDetailDTO{}, err
	}
	count, err := countSubordinates(employee.ID, snapshot)
	if err != nil {
		return EmployeeDetailDTO{}, err
	}

	return employeeToDetail(employee, count), nil
}

func (s *EmployeeService) ensureEmployeeExists(ctx context.Context, id uint) error {
	exists, err := s.employees.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NotFound(employeeEntity, id)
	}
	return nil
}

func countSubordinates(id uint, snapshot []models.Employee) (int, error) {
	count, err := hierarchy.CountSubordinates(id, snapshot)
	if errors.Is(err, hierarchy.ErrCycle) {
		return 0, apperror.New(apperror.CodeValidation, "The supervisor hierarchy below this employee contains a cycle")
	}
	return count, err
}

func mapStoreError(err error, id uint) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperror.NotFound(employeeEntity, id)
	}
	return err
}

func employeeToSummary(employee models.Employee) EmployeeSummaryDTO {
	return EmployeeSummaryDTO{
		ID:           employee.ID,
		Name:         employee.Name,
		Email:        employee.Email,
		SupervisorID: employee.SupervisorID,
		UpdatedAt:    employee.UpdatedAt,
	}
}

func employeeToDetail(employee models.Employee, subordinatesCount int) EmployeeDetailDTO {
	return EmployeeDetailDTO{
		ID:                employee.ID,
		Name:              employee.Name,
		Email:             employee.Email,
		SupervisorID:      employee.SupervisorID,
		UpdatedAt:         employee.UpdatedAt,
		SubordinatesCount: subordinatesCount,
	}
}
