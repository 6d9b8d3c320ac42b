package app

import (
	"context"
	"fmt"

	"temptrack/internal/domain"
)

// DefaultRetentionDays keeps two years of history.
const DefaultRetentionDays = 730

// RetentionService purges history older than the retention period.
type RetentionService struct {
	repo domain.RetentionRepository
	days int
}

// NewRetentionService creates a RetentionService keeping days days.
func NewRetentionService(repo domain.RetentionRepository, days int) *RetentionService {
	return &RetentionService{repo: repo, days: days}
}

// Cutoff returns the earliest day kept when purging as of today.
func (s *RetentionService) Cutoff(today domain.Date) domain.Date {
	return today.AddDays(-s.days)
}

// Purge removes every reading, cycle start and note dated before the
// cutoff.
func (s *RetentionService) Purge(ctx context.Context, today domain.Date) (domain.PurgeResult, error) {
	if s.days < 1 {
		return domain.PurgeResult{}, fmt.Errorf("%w: retention must be at least one day, got %d", ErrValidation, s.days)
	}
	return s.repo.PurgeBefore(ctx, s.Cutoff(today))
}
