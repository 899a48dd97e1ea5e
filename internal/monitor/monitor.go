// Package monitor serves the control loop's state over HTTP and lets remote
// clients press the board's buttons.
package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"microlife/internal/control"
	hostcore "microlife/internal/core"
	"microlife/internal/input"

	"github.com/gorilla/mux"
)

// shutdownTimeout bounds how long in-flight requests may finish on shutdown.
const shutdownTimeout = 5 * time.Second

// ParameterSource provides the snapshot served at /api/params.
type ParameterSource interface {
	Parameters() hostcore.ParameterSnapshot
}

// Monitor mirrors the latest frame for HTTP clients. ObserveFrame runs on the
// loop goroutine; handlers run on server goroutines.
type Monitor struct {
	source ParameterSource

	mu      sync.Mutex
	last    control.FrameReport
	seen    bool
	params  hostcore.ParameterSnapshot
	buttons map[string]*input.Latch
}

// NewMonitor creates a Monitor. source may be nil.
func NewMonitor(source ParameterSource) *Monitor {
	return &Monitor{source: source, buttons: map[string]*input.Latch{}}
}

// RegisterButton exposes a latch under /api/press/{name}.
func (m *Monitor) RegisterButton(name string, l *input.Latch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons[name] = l
}

// ObserveFrame records the report and refreshes the parameter snapshot.
func (m *Monitor) ObserveFrame(r control.FrameReport) {
	var params hostcore.ParameterSnapshot
	if m.source != nil {
		params = m.source.Parameters()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = r
	m.seen = true
	m.params = params
}

// Router builds the HTTP routes.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/state", m.state).Methods(http.MethodGet)
	r.HandleFunc("/api/params", m.parameters).Methods(http.MethodGet)
	r.HandleFunc("/api/press/{button}", m.press).Methods(http.MethodPost)
	return r
}

// StartServer listens on addr and serves in the background until ctx is done,
// then shuts the server down. It returns the bound address, which matters
// when addr asks for port 0.
func (m *Monitor) StartServer(ctx context.Context, addr string) (net.Addr, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("monitor listen: %w", err)
	}

	srv := &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
	}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("monitor stopped: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("monitor shutdown: %v", err)
		}
	}()
	return listener.Addr(), nil
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	last, seen := m.last, m.seen
	m.mu.Unlock()

	if !seen {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, last)
}

func (m *Monitor) parameters(w http.ResponseWriter, _ *http.Request) {
	m.mu.Lock()
	params := m.params
	m.mu.Unlock()
	writeJSON(w, params)
}

func (m *Monitor) press(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["button"]

	m.mu.Lock()
	latch, ok := m.buttons[name]
	m.mu.Unlock()
	if !ok {
		http.Error(w, fmt.Sprintf("no button %q", name), http.StatusNotFound)
		return
	}

	frames := 1
	if v := r.URL.Query().Get("frames"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			http.Error(w, "frames must be a positive integer", http.StatusBadRequest)
			return
		}
		frames = parsed
	}

	latch.Press(frames)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("monitor: encoding response: %v", err)
	}
}
