package handler

import (
	"net/http"
	"time"

	"studybuddy-api/internal/container"
)

// HealthHandler handles liveness and banner requests
type HealthHandler struct {
	container *container.Container
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container) *HealthHandler {
	return &HealthHandler{
		container: container,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Service    string            `json:"service"`
	Components map[string]string `json:"components"`
}

// BannerResponse is the root service banner
type BannerResponse struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	APIBase string `json:"api_base"`
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	writeJSON(w, logger, http.StatusOK, BannerResponse{
		Name:    h.container.GetConfig().AppName,
		Status:  "ok",
		APIBase: "/api/v1",
	})
}

// Check handles GET /health. The database is required; Redis is optional
// infrastructure and only degrades the report.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	ctx := r.Context()

	components := map[string]string{}
	status := "healthy"
	code := http.StatusOK

	if err := h.container.GetDB().Health(ctx); err != nil {
		logger.WithError(err).Error("Database health check failed")
		components["database"] = "unhealthy"
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		components["database"] = "healthy"
	}

	if redisClient := h.container.GetRedisClient(); redisClient != nil {
		if err := redisClient.Health(ctx); err != nil {
			logger.WithError(err).Warn("Redis health check failed")
			components["redis"] = "unhealthy"
			if status == "healthy" {
				status = "degraded"
			}
		} else {
			components["redis"] = "healthy"
		}
	} else {
		components["redis"] = "not_configured"
	}

	writeJSON(w, logger, code, HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Service:    h.container.GetConfig().AppName,
		Components: components,
	})
}
