// Package handler provides HTTP handlers for the RouteLog Pro API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/routelogpro/routelogpro/internal/api/models"
	"github.com/routelogpro/routelogpro/internal/api/response"
)

// Pinger checks connectivity to a backing subsystem.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
}

// NewOpsHandler creates a new OpsHandler. db may be nil when the service
// runs against the in-memory repositories.
func NewOpsHandler(version, buildTime string, db Pinger) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. Fails when
// the database is down so the instance is pulled from rotation.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			health.Status = models.HealthStatusFail
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	dbStatus := models.HealthStatusOK
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			dbStatus = models.HealthStatusFail
		}
	}

	overall := models.HealthStatusOK
	if dbStatus != models.HealthStatusOK {
		overall = models.HealthStatusDegraded
	}

	status := models.SystemStatus{
		Status: overall,
		Time:   now,
		Subsystems: []models.SubsystemStatus{
			{Name: "postgres", Status: dbStatus},
		},
	}
	response.JSON(w, r, http.StatusOK, status)
}
