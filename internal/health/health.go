// Package health serves the agent's liveness and readiness probes.
//
//   - /healthz is liveness; a process that can answer HTTP is alive.
//   - /readyz is readiness; 200 only when every registered [Checker]
//     passes. The agent is "ready" when it can hear and speak: the
//     synthesizer reports ready and at least one answer backend is usable.
//
// The readiness body lists each check in registration order so a probe
// failure names the broken dependency.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// checkTimeout bounds a single readiness check. All checks here are local
// state inspections, so it can be short.
const checkTimeout = 2 * time.Second

// Checker is a named readiness check. Check returns nil when the dependency
// is usable and an error describing the failure otherwise.
type Checker struct {
	// Name labels the check in the readiness body (e.g. "synth", "backends").
	Name string

	// Check probes the dependency. It must respect context cancellation.
	Check func(ctx context.Context) error
}

// checkResult is one entry of the readiness body.
type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type body struct {
	Status string        `json:"status"`
	Checks []checkResult `json:"checks,omitempty"`
}

// Handler serves the probe endpoints. Safe for concurrent use; the checker
// list is fixed at construction.
type Handler struct {
	checkers []Checker
}

// New returns a Handler evaluating the given checkers, in order, on each
// /readyz request.
func New(checkers ...Checker) *Handler {
	c := make([]Checker, len(checkers))
	copy(c, checkers)
	return &Handler{checkers: c}
}

// Healthz always answers 200.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, body{Status: "ok"})
}

// Readyz evaluates every checker and answers 200 when all pass, 503
// otherwise. Each check runs under a [checkTimeout] deadline derived from
// the request context.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	res := body{
		Status: "ok",
		Checks: make([]checkResult, 0, len(h.checkers)),
	}
	status := http.StatusOK

	for _, c := range h.checkers {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Check(ctx)
		cancel()

		entry := checkResult{Name: c.Name, OK: err == nil}
		if err != nil {
			entry.Error = err.Error()
			res.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}
		res.Checks = append(res.Checks, entry)
	}

	writeJSON(w, status, res)
}

// Register adds the probe routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}
