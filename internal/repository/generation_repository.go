package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/digkill/cinexa/internal/models"
)

type GenerationRepository struct {
	db *sql.DB
}

func NewGenerationRepository(db *sql.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

const generationColumns = `id, owner_id, kind, prompt, status, COALESCE(media_url, ''), COALESCE(thumbnail_url, ''), created_at, settings, seo`

func scanGeneration(row interface{ Scan(...any) error }) (*models.GenerationRecord, error) {
	var g models.GenerationRecord
	var kind, status string
	var settings []byte
	var seo sql.NullString
	if err := row.Scan(&g.ID, &g.OwnerID, &kind, &g.Prompt, &status, &g.MediaURL, &g.ThumbnailURL, &g.CreatedAt, &settings, &seo); err != nil {
		return nil, err
	}
	g.Kind = models.GenerationKind(kind)
	g.Status = models.GenerationStatus(status)
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &g.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	if seo.Valid && seo.String != "" {
		var meta models.SEOMetadata
		if err := json.Unmarshal([]byte(seo.String), &meta); err != nil {
			return nil, fmt.Errorf("decode seo: %w", err)
		}
		g.SEO = &meta
	}
	return &g, nil
}

func (r *GenerationRepository) Append(ctx context.Context, record *models.GenerationRecord) error {
	settings, err := json.Marshal(record.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	var seo sql.NullString
	if record.SEO != nil {
		raw, err := json.Marshal(record.SEO)
		if err != nil {
			return fmt.Errorf("encode seo: %w", err)
		}
		seo = sql.NullString{String: string(raw), Valid: true}
	}
	const query = `
INSERT INTO generations (id, owner_id, kind, prompt, status, media_url, thumbnail_url, created_at, settings, seo)
VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.OwnerID, string(record.Kind), record.Prompt, string(record.Status),
		record.MediaURL, record.ThumbnailURL, record.CreatedAt, settings, seo); err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}
	return nil
}

func (r *GenerationRepository) Get(ctx context.Context, id string) (*models.GenerationRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+generationColumns+` FROM generations WHERE id = ?`, id)
	g, err := scanGeneration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan generation: %w", err)
	}
	return g, nil
}

// ListByOwner orders by the auto-increment seq column, which reproduces
// insertion order even when two records share a created_at value.
func (r *GenerationRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.GenerationRecord, error) {
	return r.query(ctx, `SELECT `+generationColumns+` FROM generations WHERE owner_id = ? ORDER BY seq DESC`, ownerID)
}

func (r *GenerationRepository) ListAll(ctx context.Context) ([]models.GenerationRecord, error) {
	return r.query(ctx, `SELECT `+generationColumns+` FROM generations ORDER BY seq DESC`)
}

func (r *GenerationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM generations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete generation: %w", err)
	}
	return nil
}

func (r *GenerationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM generations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count generations: %w", err)
	}
	return count, nil
}

func (r *GenerationRepository) query(ctx context.Context, query string, args ...any) ([]models.GenerationRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var records []models.GenerationRecord
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan generation list: %w", err)
		}
		records = append(records, *g)
	}
	return records, rows.Err()
}
