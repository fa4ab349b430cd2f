package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
)

// HealthChecker serves the liveness and readiness endpoints of the planner
// server.
type HealthChecker struct {
	ready   atomic.Bool
	sc      *ServerContext
	started time.Time
}

// NewHealthChecker returns a checker that starts out ready. sc may be nil.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{sc: sc, started: time.Now()}
	h.ready.Store(true)
	return h
}

// SetReady flips readiness, e.g. while draining on shutdown.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports the readiness set by SetReady.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

func (h *HealthChecker) shuttingDown() bool {
	return h.sc != nil && h.sc.IsShutdown()
}

// HealthResponse is the body of /healthz and /readyz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse adds planner state to the health status.
type DetailedHealthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Users    int    `json:"users"`
	Strategy string `json:"default_strategy,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// status folds readiness and shutdown into one status and HTTP code.
func (h *HealthChecker) status() (string, int) {
	switch {
	case !h.ready.Load():
		return healthStatusNotReady, http.StatusServiceUnavailable
	case h.shuttingDown():
		return healthStatusShuttingDown, http.StatusServiceUnavailable
	default:
		return healthStatusOK, http.StatusOK
	}
}

// LivenessHandler answers /healthz. It only reports that the process runs.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler answers /readyz with one entry per check.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks := map[string]string{
			"ready":    healthStatusOK,
			"shutdown": healthStatusOK,
		}
		if !h.ready.Load() {
			checks["ready"] = healthStatusNotReady
		}
		if h.shuttingDown() {
			checks["shutdown"] = healthStatusShuttingDown
		}

		resp := HealthResponse{Status: healthStatusOK, Checks: checks}
		code := http.StatusOK
		if _, c := h.status(); c != http.StatusOK {
			resp.Status = healthStatusNotReady
			code = c
		}
		writeJSON(w, code, resp)
	})
}

// DetailedHealthHandler answers /healthz/detailed with uptime, the number of
// users and the default strategy.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		status, code := h.status()
		resp := DetailedHealthResponse{
			Status: status,
			Uptime: time.Since(h.started).Truncate(time.Second).String(),
		}
		if h.sc != nil {
			resp.Users = len(h.sc.Planner().UserIDs())
			resp.Strategy = string(h.sc.DefaultStrategy())
		}
		writeJSON(w, code, resp)
	})
}

// RegisterHealthEndpoints mounts the three endpoints on mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}
