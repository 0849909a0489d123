package provider

import (
	"context"
	"errors"

	"github.com/digkill/cinexa/internal/models"
)

var ErrUnsupportedKind = errors.New("unsupported generation kind")

type MediaRequest struct {
	Kind            models.GenerationKind
	Prompt          string
	ModelID         string
	Style           string
	AspectRatio     string
	DurationMinutes int
	Language        string
	VoiceID         string
	Title           string
	Subtitle        string
}

type MediaResult struct {
	URL          string
	ThumbnailURL string
}

type MediaGenerator interface {
	GenerateMedia(ctx context.Context, req MediaRequest) (*MediaResult, error)
}

type SEOGenerator interface {
	GenerateSEO(ctx context.Context, prompt, language string) (*models.SEOMetadata, error)
}
