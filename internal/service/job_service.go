package service

import (
	"fmt"
	"log"
	"time"

	"spotsavers/internal/db"
	"spotsavers/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// ExpireSpaces marks every space whose slot ended more than the grace
// window ago as expired.
func (s *JobService) ExpireSpaces() error {
	expired, err := s.Repo.ExpireSpaces()
	if err != nil {
		return fmt.Errorf("cron job: failed to expire spaces: %w", err)
	}
	if expired > 0 {
		log.Printf("Cron Job: Marked %d spaces as expired.", expired)
	}
	return nil
}

// RejectStalePendingBookings rejects pending bookings older than the given
// TTL. Whether stale pendings expire at all is deployment policy; this only
// runs when a TTL is configured.
func (s *JobService) RejectStalePendingBookings(ttl time.Duration) error {
	before := time.Now().UTC().Add(-ttl)
	ids, err := s.Repo.GetStalePendingBookingIDs(before)
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending bookings: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: Found %d stale pending bookings to reject. IDs: %v", len(ids), ids)
	if err := s.Repo.UpdateBookingStates(ids, db.BookingStateRejected); err != nil {
		return fmt.Errorf("cron job: failed to reject stale pending bookings: %w", err)
	}
	return nil
}
