package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digkill/cinexa/internal/models"
)

var generationRowColumns = []string{"id", "owner_id", "kind", "prompt", "status", "media_url", "thumbnail_url", "created_at", "settings", "seo"}

func TestGenerationRepository_Append(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewGenerationRepository(db)

	now := time.Now()
	mock.ExpectExec(`INSERT INTO generations`).
		WithArgs("g1", "u1", "VIDEO", "waves", "COMPLETED", "https://v", "", now,
			[]byte(`{"modelId":"veo_3","duration":3}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Append(context.Background(), &models.GenerationRecord{
		ID:        "g1",
		OwnerID:   "u1",
		Kind:      models.KindVideo,
		Prompt:    "waves",
		Status:    models.StatusCompleted,
		MediaURL:  "https://v",
		CreatedAt: now,
		Settings:  models.GenerationSettings{ModelID: "veo_3", DurationMinutes: 3},
		SEO:       &models.SEOMetadata{Title: "Waves"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerationRepository_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewGenerationRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM generations WHERE owner_id = \? ORDER BY seq DESC`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(generationRowColumns).
			AddRow("g2", "u1", "VIDEO", "b", "COMPLETED", "https://v", "https://t", now,
				[]byte(`{"modelId":"veo_3","duration":2,"seoEnabled":true}`), `{"title":"B","description":"d","tags":["x"]}`).
			AddRow("g1", "u1", "IMAGE", "a", "COMPLETED", "https://i", "", now.Add(-time.Hour),
				[]byte(`{"modelId":"imagen_3","aspectRatio":"1:1"}`), nil))

	records, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "g2", records[0].ID)
	assert.Equal(t, models.KindVideo, records[0].Kind)
	assert.Equal(t, 2, records[0].Settings.DurationMinutes)
	require.NotNil(t, records[0].SEO)
	assert.Equal(t, []string{"x"}, records[0].SEO.Tags)

	assert.Equal(t, "1:1", records[1].Settings.AspectRatio)
	assert.Nil(t, records[1].SEO)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerationRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM generations`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := NewGenerationRepository(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
