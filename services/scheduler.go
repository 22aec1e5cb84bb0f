package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"sportconnect-backend/models"
)

// StartTokenCleanup runs an hourly sweep deleting expired refresh tokens.
// Rotation already consumes tokens on use; the sweep catches the ones that
// simply aged out.
func (s *AuthService) StartTokenCleanup() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			result := s.DB.Where("expires_at <= ?", time.Now()).
				Delete(&models.RefreshToken{})
			if result.Error != nil {
				log.Printf("[Scheduler] refresh token cleanup failed: %v", result.Error)
				return
			}
			if result.RowsAffected > 0 {
				log.Printf("[Scheduler] purged %d expired refresh tokens", result.RowsAffected)
			}
		}),
	)
}
