package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

const reindexTimeout = 10 * time.Minute

// Reindexer rebuilds the search index from the listing sources
type Reindexer interface {
	Reindex(ctx context.Context) (int, error)
}

// Pruner drops idle state, such as rate limiter clients
type Pruner interface {
	Prune() int
}

// Config controls the scheduled jobs
type Config struct {
	DailyRunEnabled bool
	DailyRunTime    string
	PruneInterval   time.Duration
}

// Scheduler handles the scheduled reindex and housekeeping jobs
type Scheduler struct {
	cron      *cron.Cron
	reindexer Reindexer
	pruners   []Pruner
	config    Config
	isRunning bool

	mu      sync.Mutex
	running bool
	lastRun time.Time
	lastErr error
}

// NewScheduler creates a new scheduler
func NewScheduler(reindexer Reindexer, cfg Config, pruners ...Pruner) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		reindexer: reindexer,
		pruners:   pruners,
		config:    cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if s.config.DailyRunEnabled {
		// Parse daily run time (HH:MM format in config)
		cronSpec := s.parseDailyRunTime(s.config.DailyRunTime)

		_, err := s.cron.AddFunc(cronSpec, func() {
			log.Println("Scheduler: Starting daily reindex job...")
			if err := s.RunNow(); err != nil {
				log.Printf("Scheduler: Daily reindex failed: %v", err)
			}
		})
		if err != nil {
			return err
		}
		log.Printf("Scheduler: Daily reindex at %s (cron: %s)", s.config.DailyRunTime, cronSpec)
	} else {
		log.Println("Scheduler: Daily reindex is disabled in configuration")
	}

	if len(s.pruners) > 0 && s.config.PruneInterval > 0 {
		spec := fmt.Sprintf("@every %s", s.config.PruneInterval)
		if _, err := s.cron.AddFunc(spec, s.prune); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.isRunning = true
	log.Println("Scheduler: Started")

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		<-s.cron.Stop().Done()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunNow immediately executes the reindex job. A second call while one is
// in progress is rejected.
func (s *Scheduler) RunNow() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("reindex already in progress")
	}
	s.running = true
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), reindexTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.reindexer.Reindex(ctx)

	s.mu.Lock()
	s.running = false
	s.lastRun = start
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		return err
	}
	log.Printf("Scheduler: Reindex completed. Listings: %d, duration_ms=%d", n, time.Since(start).Milliseconds())
	return nil
}

// Status reports the last reindex run
type Status struct {
	Running   bool      `json:"running"`
	LastRun   time.Time `json:"last_run"`
	LastError string    `json:"last_error,omitempty"`
}

func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Running: s.running, LastRun: s.lastRun}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

func (s *Scheduler) prune() {
	for _, p := range s.pruners {
		if n := p.Prune(); n > 0 {
			log.Printf("Scheduler: Pruned %d idle entries from %T", n, p)
		}
	}
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	// Default to 2:00 AM if parsing fails
	log.Printf("Scheduler: Failed to parse time '%s', using default 02:00", timeStr)
	return "0 2 * * *"
}
