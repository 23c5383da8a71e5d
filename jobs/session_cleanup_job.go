// File: /jobs/session_cleanup_job.go
package jobs

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"chatmini-api/repositories"
)

// SessionCleanupJob handles periodic deletion of expired session rows
type SessionCleanupJob struct {
	sessionRepo *repositories.SessionRepository
	ticker      *time.Ticker
	done        chan bool
}

// NewSessionCleanupJob creates a new session cleanup job
func NewSessionCleanupJob(db *gorm.DB, interval time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessionRepo: repositories.NewSessionRepository(db),
		ticker:      time.NewTicker(interval),
		done:        make(chan bool),
	}
}

// Start begins the cleanup job
func (j *SessionCleanupJob) Start() {
	log.Info().Msg("session cleanup job started")

	go func() {
		// Run immediately on start
		j.cleanup()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				log.Info().Msg("session cleanup job stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup job
func (j *SessionCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *SessionCleanupJob) cleanup() {
	deleted, err := j.sessionRepo.DeleteExpired()
	if err != nil {
		log.Error().Err(err).Msg("session cleanup failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("expired sessions removed")
	}
}
