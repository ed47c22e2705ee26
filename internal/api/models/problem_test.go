package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelogpro/routelogpro/internal/api/models"
)

func TestProblem_NewProblem(t *testing.T) {
	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	)

	assert.Equal(t, models.ProblemTypeValidation, p.Type)
	assert.Equal(t, "Validation error", p.Title)
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Equal(t, "req_test123", p.TraceID)
	assert.Empty(t, p.Detail)
	assert.Empty(t, p.Instance)
	assert.Nil(t, p.Errors)
}

func TestProblem_WithDetail(t *testing.T) {
	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	).WithDetail("current_cycle_used must be below the 70 hour cycle limit")

	assert.Equal(t, "current_cycle_used must be below the 70 hour cycle limit", p.Detail)
}

func TestProblem_WithInstance(t *testing.T) {
	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	).WithInstance("/v1/trips")

	assert.Equal(t, "/v1/trips", p.Instance)
}

func TestProblem_WithErrors(t *testing.T) {
	fieldErrors := []models.FieldError{
		{Field: "pickup_location", Message: "is required", Code: "REQUIRED"},
		{Field: "current_cycle_used", Message: "must be zero or positive", Code: "OUT_OF_RANGE"},
	}

	p := models.NewProblem(
		models.ProblemTypeValidation,
		"Validation error",
		http.StatusBadRequest,
		"req_test123",
	).WithErrors(fieldErrors)

	require.Len(t, p.Errors, 2)
	assert.Equal(t, "pickup_location", p.Errors[0].Field)
	assert.Equal(t, "is required", p.Errors[0].Message)
	assert.Equal(t, "REQUIRED", p.Errors[0].Code)
}

func TestProblem_Write(t *testing.T) {
	p := models.NewBadRequest("req_test123", "invalid input", []models.FieldError{
		{Field: "username", Message: "username is required"},
	})
	p.Instance = "/v1/auth/register"

	w := httptest.NewRecorder()
	p.Write(w)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Equal(t, "req_test123", w.Header().Get("X-Request-Id"))

	var result models.Problem
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.Equal(t, models.ProblemTypeValidation, result.Type)
	assert.Equal(t, "Validation error", result.Title)
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, "invalid input", result.Detail)
	assert.Equal(t, "/v1/auth/register", result.Instance)
	assert.Equal(t, "req_test123", result.TraceID)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "username", result.Errors[0].Field)
}

func TestProblemConstructors(t *testing.T) {
	tests := []struct {
		name         string
		problem      *models.Problem
		expectedType string
		expectedCode int
	}{
		{"bad request", models.NewBadRequest("req_1", "invalid data", nil), models.ProblemTypeValidation, http.StatusBadRequest},
		{"unauthorized", models.NewUnauthorized("req_1", "token expired"), models.ProblemTypeUnauthorized, http.StatusUnauthorized},
		{"not found", models.NewNotFound("req_1", "trip not found"), models.ProblemTypeNotFound, http.StatusNotFound},
		{"conflict", models.NewConflict("req_1", "plan already in progress"), models.ProblemTypeConflict, http.StatusConflict},
		{"too many requests", models.NewTooManyRequests("req_1", "rate limit exceeded"), models.ProblemTypeTooManyRequests, http.StatusTooManyRequests},
		{"internal", models.NewInternalError("req_1", "database error"), models.ProblemTypeInternal, http.StatusInternalServerError},
		{"unavailable", models.NewServiceUnavailable("req_1", "planner unavailable"), models.ProblemTypeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedType, tt.problem.Type)
			assert.Equal(t, tt.expectedCode, tt.problem.Status)
			assert.Equal(t, "req_1", tt.problem.TraceID)
			assert.NotEmpty(t, tt.problem.Detail)
		})
	}
}
