package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"employee-management-api/internal/apperror"
	"employee-management-api/internal/security"
	"employee-management-api/internal/service"
)

const unexpectedErrorMessage = "An unexpected error occurred. Please try again later."

// TokenValidator checks bearer tokens presented on protected routes.
type TokenValidator interface {
	Parse(token string) (*security.Claims, error)
}

type Handler struct {
	employees service.EmployeeManager
	auth      service.Authenticator
	tokens    TokenValidator
	logger    *log.Logger
	router    chi.Router
}

func NewHandler(employees service.EmployeeManager, auth service.Authenticator, tokens TokenValidator, logger *log.Logger) *Handler {
	h := &Handler{
		employees: employees,
		auth:      auth,
		tokens:    tokens,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(h.recoverPanics)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthcheck", healthcheck)
	r.Post("/api/auth/login", h.handleLogin)
	r.Route("/api/employees", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/{id}", h.handleGetEmployee)
		r.Put("/{id}", h.handleUpdateEmployee)
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createEmployeeRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email,max=200"`
	SupervisorID *uint  `json:"supervisorId"`
}

type updateEmployeeRequest struct {
	ID           uint   `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required,max=200"`
	Email        string `json:"email" validate:"required,email,max=200"`
	SupervisorID *uint  `json:"supervisorId"`
}

type errorResponse struct {
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

func healthcheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := validateRequest(req); err != nil {
		h.respondWithError(w, err)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.ListEmployees(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseUintID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	employee, err := h.employees.GetEmployee(r.Context(), employeeID)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateRequest(req); err != nil {
		h.respondWithError(w, err)
		return
	}

	employee, err := h.employees.CreateEmployee(r.Context(), service.CreateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		SupervisorID: req.SupervisorID,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	w.Header().Set("Location", "/api/employees/"+strconv.FormatUint(uint64(employee.ID), 10))
	writeJSON(w, http.StatusCreated, employee)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := parseUintID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ID != employeeID {
		writeError(w, http.StatusBadRequest, "ID in URL does not match ID in request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validateRequest(req); err != nil {
		h.respondWithError(w, err)
		return
	}

	employee, err := h.employees.UpdateEmployee(r.Context(), service.UpdateEmployeeInput{
		ID:           req.ID,
		Name:         req.Name,
		Email:        req.Email,
		SupervisorID: req.SupervisorID,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

func (h *Handler) respondWithError(w http.ResponseWriter, err error) {
	switch apperror.GetCode(err) {
	case apperror.CodeValidation:
		h.logger.Printf("validation error: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
			Errors:     apperror.GetFields(err),
		})
	case apperror.CodeUnauthorized:
		h.logger.Printf("unauthorized access attempt: %v", err)
		writeError(w, http.StatusUnauthorized, err.Error())
	case apperror.CodeNotFound:
		h.logger.Printf("resource not found: %v", err)
		writeError(w, http.StatusNotFound, err.Error())
	case apperror.CodeConflict:
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Printf("unexpected error: %+v", err)
		writeError(w, http.StatusInternalServerError, unexpectedErrorMessage)
	}
}

func decodeJSON(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return errors.New("invalid JSON body")
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		StatusCode: status,
		Message:    message,
	})
}

func parseUintID(raw string) (uint, error) {
	id64, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id64 == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id64), nil
}
