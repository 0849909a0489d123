package provider

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/digkill/cinexa/internal/models"
)

var (
	sampleVideos = []string{
		"https://assets.mixkit.co/videos/preview/mixkit-futuristic-city-traffic-aerial-view-33-large.mp4",
		"https://assets.mixkit.co/videos/preview/mixkit-stars-in-space-1610-large.mp4",
		"https://assets.mixkit.co/videos/preview/mixkit-waves-coming-to-the-beach-5016-large.mp4",
	}
	sampleImages = []string{
		"https://images.unsplash.com/photo-1620641788421-7a1c342ea42e?q=80&w=1024&auto=format&fit=crop",
		"https://images.unsplash.com/photo-1534528741775-53994a69daeb?q=80&w=1024&auto=format&fit=crop",
		"https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?q=80&w=1024&auto=format&fit=crop",
	}
)

// Delays simulates provider latency per operation.
type Delays struct {
	Image     time.Duration
	Thumbnail time.Duration
	Video     time.Duration
	SEO       time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Image:     2 * time.Second,
		Thumbnail: 3 * time.Second,
		Video:     4500 * time.Millisecond,
		SEO:       1500 * time.Millisecond,
	}
}

// Mock returns sample assets after a fixed delay. It never fails unless the
// context is cancelled.
type Mock struct {
	delays Delays
	pick   func(n int) int
	log    *slog.Logger
}

func NewMock(delays Delays, log *slog.Logger) *Mock {
	return &Mock{delays: delays, pick: rand.Intn, log: log}
}

func (m *Mock) GenerateMedia(ctx context.Context, req MediaRequest) (*MediaResult, error) {
	var (
		delay time.Duration
		pool  []string
	)
	switch req.Kind {
	case models.KindVideo:
		delay, pool = m.delays.Video, sampleVideos
	case models.KindImage:
		delay, pool = m.delays.Image, sampleImages
	case models.KindThumbnail:
		delay, pool = m.delays.Thumbnail, sampleImages
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, req.Kind)
	}

	if m.log != nil {
		m.log.Info("mock generation started", "kind", req.Kind, "model", req.ModelID, "aspect_ratio", req.AspectRatio)
	}
	if err := sleep(ctx, delay); err != nil {
		return nil, err
	}

	url := pool[m.pick(len(pool))]
	result := &MediaResult{URL: url}
	if req.Kind == models.KindVideo {
		result.ThumbnailURL = sampleImages[m.pick(len(sampleImages))]
	} else {
		result.ThumbnailURL = url
	}
	return result, nil
}

func (m *Mock) GenerateSEO(ctx context.Context, prompt, language string) (*models.SEOMetadata, error) {
	if err := sleep(ctx, m.delays.SEO); err != nil {
		return nil, err
	}
	return TemplateSEO(prompt), nil
}

// TemplateSEO builds SEO metadata from the prompt alone.
func TemplateSEO(prompt string) *models.SEOMetadata {
	prompt = strings.TrimSpace(prompt)
	short := prompt
	if r := []rune(short); len(r) > 40 {
		short = string(r[:40])
	}
	hashtag := "Video"
	if fields := strings.Fields(prompt); len(fields) > 0 {
		hashtag = fields[0]
	}
	return &models.SEOMetadata{
		Title: fmt.Sprintf("%s: the complete guide", short),
		Description: fmt.Sprintf("Everything about %s in one video.\n\nIn this video:\n- What %s is\n- How it works\n- Full analysis\n\n#%s #Viral #Education",
			prompt, prompt, hashtag),
		Tags: []string{
			prompt, "how to " + prompt, prompt + " tutorial", "viral video", "education",
			"documentary", "step by step", "trends",
		},
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// StaticSEO serves TemplateSEO without delay. It pairs with media providers
// that have no SEO capability of their own.
type StaticSEO struct{}

func (StaticSEO) GenerateSEO(ctx context.Context, prompt, _ string) (*models.SEOMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return TemplateSEO(prompt), nil
}
