package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// MaintenanceStatus represents the current status of maintenance tasks
type MaintenanceStatus struct {
	Running          bool      `json:"running"`
	Enabled          bool      `json:"enabled"`
	LastRun          time.Time `json:"lastRun,omitempty"`
	LastRunDuration  string    `json:"lastRunDuration,omitempty"`
	SessionsSwept    int       `json:"sessionsSwept"`
	WorkspacesSwept  int       `json:"workspacesSwept"`
	Errors           []string  `json:"errors,omitempty"`
	NextScheduledRun time.Time `json:"nextScheduledRun,omitempty"`
}

// MaintenanceService handles background housekeeping: expired admin
// sessions are deactivated and idle dashboard workspaces dropped so
// abandoned logins do not pin mirrors in memory.
type MaintenanceService struct {
	authService      *AuthService
	dashboardService *DashboardService
	workspaceMaxIdle time.Duration

	mu       sync.RWMutex
	enabled  bool
	running  bool
	stopChan chan struct{}
	status   MaintenanceStatus
	ticker   *time.Ticker
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(authService *AuthService, dashboardService *DashboardService, workspaceMaxIdle time.Duration) *MaintenanceService {
	if workspaceMaxIdle <= 0 {
		workspaceMaxIdle = 2 * time.Hour
	}
	return &MaintenanceService{
		authService:      authService,
		dashboardService: dashboardService,
		workspaceMaxIdle: workspaceMaxIdle,
		stopChan:         make(chan struct{}),
		enabled:          true,
		status: MaintenanceStatus{
			Enabled: true,
			Errors:  []string{},
		},
	}
}

// Start begins the background maintenance loop
func (s *MaintenanceService) Start() {
	s.mu.Lock()
	if s.ticker != nil {
		s.mu.Unlock()
		return // Already started
	}
	s.enabled = true
	s.status.Enabled = true
	s.stopChan = make(chan struct{})
	s.ticker = time.NewTicker(1 * time.Hour)
	s.status.NextScheduledRun = time.Now().Add(1 * time.Hour)
	s.mu.Unlock()

	log.Println("Maintenance service started (runs every hour)")

	// Run immediately on startup
	go s.runMaintenance()

	// Then run every hour
	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.runMaintenance()
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop halts the background maintenance loop
func (s *MaintenanceService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticker == nil {
		return
	}
	s.ticker.Stop()
	s.ticker = nil
	close(s.stopChan)
	s.enabled = false
	s.status.Enabled = false
	log.Println("Maintenance service stopped")
}

// Status returns a snapshot of the maintenance state
func (s *MaintenanceService) Status() MaintenanceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *MaintenanceService) runMaintenance() {
	s.mu.Lock()
	if s.running || !s.enabled {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.status.Running = true
	s.mu.Unlock()

	start := time.Now()
	var errs []string

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	sessions, err := s.authService.CleanupExpiredSessions(ctx)
	if err != nil {
		errs = append(errs, "session cleanup: "+err.Error())
	}

	workspaces := s.dashboardService.SweepIdle(s.workspaceMaxIdle)

	s.mu.Lock()
	s.running = false
	s.status.Running = false
	s.status.LastRun = start
	s.status.LastRunDuration = time.Since(start).String()
	s.status.SessionsSwept = sessions
	s.status.WorkspacesSwept = workspaces
	s.status.Errors = errs
	s.status.NextScheduledRun = time.Now().Add(1 * time.Hour)
	s.mu.Unlock()

	if sessions > 0 || workspaces > 0 {
		log.Printf("Maintenance pass: %d sessions deactivated, %d idle workspaces dropped", sessions, workspaces)
	}
}
