package memory

import (
	"context"
	"sync"

	"github.com/digkill/cinexa/internal/models"
)

// GenerationRepository keeps records newest first.
type GenerationRepository struct {
	mu      sync.RWMutex
	records []models.GenerationRecord
}

func NewGenerationRepository() *GenerationRepository {
	return &GenerationRepository{}
}

func (r *GenerationRepository) Append(_ context.Context, record *models.GenerationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]models.GenerationRecord{cloneRecord(*record)}, r.records...)
	return nil
}

func (r *GenerationRepository) Get(_ context.Context, id string) (*models.GenerationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ID == id {
			out := cloneRecord(rec)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *GenerationRepository) ListByOwner(_ context.Context, ownerID string) ([]models.GenerationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.GenerationRecord
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

func (r *GenerationRepository) ListAll(_ context.Context) ([]models.GenerationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.GenerationRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

func (r *GenerationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *GenerationRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

func cloneRecord(rec models.GenerationRecord) models.GenerationRecord {
	if rec.SEO != nil {
		seo := *rec.SEO
		seo.Tags = append([]string(nil), seo.Tags...)
		rec.SEO = &seo
	}
	if rec.Settings.Audio != nil {
		audio := *rec.Settings.Audio
		rec.Settings.Audio = &audio
	}
	if rec.Settings.TextOverlay != nil {
		overlay := *rec.Settings.TextOverlay
		rec.Settings.TextOverlay = &overlay
	}
	return rec
}
