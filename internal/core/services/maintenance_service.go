package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"orgpulse-survey/internal/adapters/persistence/repositories"
	"orgpulse-survey/internal/pkg/cache"
)

// LoginLogRetention is how long login logs are kept
const LoginLogRetention = 90 * 24 * time.Hour

// MaintenanceService runs scheduled housekeeping: survey
// auto-completion, login log retention, and cache reaping
type MaintenanceService struct {
	surveyRepo   repositories.SurveyRepository
	loginLogRepo repositories.LoginLogRepository
	cache        *cache.Cache
	cron         *cron.Cron
	stopChan     chan struct{}
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	surveyRepo repositories.SurveyRepository,
	loginLogRepo repositories.LoginLogRepository,
	c *cache.Cache,
) *MaintenanceService {
	return &MaintenanceService{
		surveyRepo:   surveyRepo,
		loginLogRepo: loginLogRepo,
		cache:        c,
		cron:         cron.New(),
		stopChan:     make(chan struct{}),
	}
}

// Start registers the schedules and launches the cache reaper
func (s *MaintenanceService) Start() {
	// Daily at 03:00: close expired surveys, trim login logs
	s.cron.AddFunc("0 3 * * *", s.runDailyMaintenance)
	s.cron.Start()

	go s.runCacheReaper()

	log.Println("MaintenanceService started")
}

// Stop stops the schedules and the reaper
func (s *MaintenanceService) Stop() {
	s.cron.Stop()
	close(s.stopChan)
	log.Println("MaintenanceService stopped")
}

func (s *MaintenanceService) runDailyMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	completed, err := s.surveyRepo.CompleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("Warning: survey auto-completion failed: %v", err)
	} else if completed > 0 {
		log.Printf("Auto-completed %d expired surveys", completed)
	}

	removed, err := s.loginLogRepo.DeleteOlderThan(ctx, time.Now().Add(-LoginLogRetention))
	if err != nil {
		log.Printf("Warning: login log cleanup failed: %v", err)
	} else if removed > 0 {
		log.Printf("Removed %d old login logs", removed)
	}
}

// runCacheReaper reclaims expired cache entries every 10 minutes
func (s *MaintenanceService) runCacheReaper() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.cache.Reap(); removed > 0 {
				log.Printf("Cache reaper removed %d expired entries", removed)
			}
		case <-s.stopChan:
			return
		}
	}
}
