// Package health serves the /healthz endpoint.
//
// The sync server has no external dependencies to probe at runtime: the
// script is read and the locator index built once at startup, before the
// listener opens. A single endpoint therefore covers liveness and readiness
// in one report. It returns 200 with a JSON body naming each check while
// every registered [Check] passes, and 503 once any of them fails.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// checkTimeout bounds a single check. Checks here are in-memory state
// inspections, so hitting this means something is wedged, not slow.
const checkTimeout = 5 * time.Second

// Check is a named probe of one piece of server state. Probe returns nil
// while the state is serviceable and must respect context cancellation.
type Check struct {
	// Name keys the check's result in the JSON report, e.g. "script" or
	// "locator".
	Name string

	Probe func(ctx context.Context) error
}

// report is the /healthz response body.
type report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler answers /healthz from a fixed list of checks. Safe for concurrent
// use.
type Handler struct {
	checks []Check
}

// New creates a [Handler] over the given checks. They run sequentially, in
// order, on every request.
func New(checks ...Check) *Handler {
	c := make([]Check, len(checks))
	copy(c, checks)
	return &Handler{checks: c}
}

// Healthz runs every check and writes the JSON report: 200 when all pass,
// 503 otherwise.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	rep := report{Status: "ok"}
	if len(h.checks) > 0 {
		rep.Checks = make(map[string]string, len(h.checks))
	}

	status := http.StatusOK
	for _, c := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Probe(ctx)
		cancel()

		if err != nil {
			rep.Checks[c.Name] = "fail: " + err.Error()
			rep.Status = "fail"
			status = http.StatusServiceUnavailable
		} else {
			rep.Checks[c.Name] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(rep); err != nil {
		http.Error(w, `{"status":"error"}`, http.StatusInternalServerError)
	}
}

// Register adds the /healthz route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
}
