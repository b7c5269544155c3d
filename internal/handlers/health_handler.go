package handlers

import (
	"net/http"
	"sync"
)

// Startup step names reported by the health endpoint
const (
	StepDatabase   = "Database connection"
	StepMigrations = "Running migrations"
	StepSeed       = "Seeding reference data"
	StepEvents     = "Connecting event bus"
	StepReady      = "Server ready"
)

// StartupStatus tracks the initialization progress
type StartupStatus struct {
	mu       sync.RWMutex
	ready    bool
	current  string
	progress int
	steps    []StartupStep
	app      http.Handler
}

// StartupStep is one named initialization stage
type StartupStep struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Ready    bool          `json:"ready"`
	Current  string        `json:"current"`
	Progress int           `json:"progress"`
	Steps    []StartupStep `json:"steps"`
}

// NewStartupStatus creates a tracker with every step pending
func NewStartupStatus() *StartupStatus {
	s := &StartupStatus{current: "Initializing..."}
	for _, name := range []string{StepDatabase, StepMigrations, StepSeed, StepEvents, StepReady} {
		s.steps = append(s.steps, StartupStep{Name: name})
	}
	return s
}

// SetCurrentStep updates the current initialization step
func (s *StartupStatus) SetCurrentStep(step string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = step
}

// CompleteStep marks a step as completed and updates progress
func (s *StartupStatus) CompleteStep(stepName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.steps {
		if s.steps[i].Name == stepName {
			s.steps[i].Completed = true
			break
		}
	}

	completed := 0
	for _, step := range s.steps {
		if step.Completed {
			completed++
		}
	}
	s.progress = (completed * 100) / len(s.steps)
}

// MarkReady marks the server as fully initialized
func (s *StartupStatus) MarkReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.steps {
		s.steps[i].Completed = true
	}
	s.ready = true
	s.current = StepReady
	s.progress = 100
}

// IsReady returns whether the server is fully initialized
func (s *StartupStatus) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Health reports startup progress: 200 once ready, 503 before
func (s *StartupStatus) Health(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := HealthResponse{
		Ready:    s.ready,
		Current:  s.current,
		Progress: s.progress,
		Steps:    append([]StartupStep(nil), s.steps...),
	}
	s.mu.RUnlock()

	status := http.StatusOK
	if !resp.Ready {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, resp)
}

// SetHandler installs the application handler the gate forwards to once
// the server is ready
func (s *StartupStatus) SetHandler(h http.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.app = h
}

// Gate is the handler the listener serves while initialization runs.
// Until MarkReady it answers GET /api/health itself and 503s everything
// else; afterwards every request goes to the installed handler.
func (s *StartupStatus) Gate() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		app, ready := s.app, s.ready
		s.mu.RUnlock()

		if ready && app != nil {
			app.ServeHTTP(w, r)
			return
		}
		if r.Method == http.MethodGet && r.URL.Path == "/api/health" {
			s.Health(w, r)
			return
		}
		w.Header().Set("Retry-After", "1")
		respondWithError(w, http.StatusServiceUnavailable, ErrServiceStarting, "", nil)
	})
}
