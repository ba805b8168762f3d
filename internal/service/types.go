package service

import (
	"context"
	"time"

	"employee-management-api/internal/models"
)

type CreateEmployeeInput struct {
	Name         string
	Email        string
	SupervisorID *uint
}

type UpdateEmployeeInput struct {
	ID           uint
	Name         string
	Email        string
	SupervisorID *uint
}

type EmployeeSummaryDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SupervisorID *uint     `json:"supervisorId,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type EmployeeDetailDTO struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	SupervisorID      *uint     `json:"supervisorId,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt"`
	SubordinatesCount int       `json:"subordinatesCount"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// EmployeeStore is the persistence contract the employee use cases rely on.
type EmployeeStore interface {
	ListAll(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id uint) (models.Employee, error)
	Insert(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type CredentialStore interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
}

type TokenIssuer interface {
	Issue(user models.User) (token string, expiresAt time.Time, err error)
}

type EmployeeManager interface {
	ListEmployees(ctx context.Context) ([]EmployeeSummaryDTO, error)
	GetEmployee(ctx context.Context, id uint) (EmployeeDetailDTO, error)
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (EmployeeDetailDTO, error)
	UpdateEmployee(ctx context.Context, input UpdateEmployeeInput) (EmployeeDetailDTO, error)
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
}
