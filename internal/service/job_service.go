package service

import (
	"fmt"
	"log"
	"time"

	"agendamiento/internal/repository"
)

const abandonedAfter = 24 * time.Hour

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// MarkAbandonedPurchases flags pending purchases older than a day as
// 'abandoned'. A purchase stays pending when the user never reached a
// terminal stage, usually an abandoned payment page.
func (s *JobService) MarkAbandonedPurchases() error {
	log.Println("Cron Job: Checking for pending purchases to mark as 'abandoned'...")

	cutoff := time.Now().Add(-abandonedAfter)
	purchaseIDs, err := s.Repo.GetPendingPurchaseIDsOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to get stale pending purchases: %w", err)
	}

	if len(purchaseIDs) == 0 {
		log.Println("Cron Job: No stale pending purchases found.")
		return nil
	}

	log.Printf("Cron Job: Found %d purchases to mark as 'abandoned'. IDs: %v", len(purchaseIDs), purchaseIDs)

	err = s.Repo.UpdatePurchaseStatuses(purchaseIDs, statusAbandoned)
	if err != nil {
		return fmt.Errorf("cron job: failed to update purchase statuses: %w", err)
	}

	log.Printf("Cron Job: Successfully updated %d purchases to 'abandoned'.", len(purchaseIDs))
	return nil
}
