package service

import (
	"context"
	"fmt"
	"time"

	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/session"
)

// RetentionWindow limits how far back an owner can see their history.
// Older records stay stored and remain visible to admins.
const RetentionWindow = 90 * 24 * time.Hour

type LedgerService struct {
	generations GenerationRepository
}

func NewLedgerService(generations GenerationRepository) *LedgerService {
	return &LedgerService{generations: generations}
}

// Append places record at the head of its owner's history.
func (s *LedgerService) Append(ctx context.Context, record *models.GenerationRecord) error {
	if err := s.generations.Append(ctx, record); err != nil {
		return fmt.Errorf("append generation: %w", err)
	}
	return nil
}

// ListForOwner returns the owner's records younger than RetentionWindow at
// now, most recent first.
func (s *LedgerService) ListForOwner(ctx context.Context, ownerID string, now time.Time) ([]models.GenerationRecord, error) {
	records, err := s.generations.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	visible := make([]models.GenerationRecord, 0, len(records))
	for _, rec := range records {
		if Visible(rec, now) {
			visible = append(visible, rec)
		}
	}
	return visible, nil
}

func (s *LedgerService) ListAll(ctx context.Context, sess session.Session) ([]models.GenerationRecord, error) {
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	records, err := s.generations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all generations: %w", err)
	}
	return records, nil
}

func (s *LedgerService) Count(ctx context.Context) (int, error) {
	n, err := s.generations.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count generations: %w", err)
	}
	return n, nil
}

func Visible(rec models.GenerationRecord, now time.Time) bool {
	return now.Sub(rec.CreatedAt) < RetentionWindow
}
