package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/digkill/cinexa/internal/catalog"
	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/provider"
	"github.com/digkill/cinexa/internal/session"
)

type GenerationService struct {
	log      *slog.Logger
	accounts *AccountService
	ledger   *LedgerService
	media    provider.MediaGenerator
	seo      provider.SEOGenerator
	ids      IDGenerator
	now      Clock
}

// GenerationRequest describes one submission. For THUMBNAIL the headline is
// Settings.TextOverlay.Title.
type GenerationRequest struct {
	Kind     models.GenerationKind
	Prompt   string
	Settings models.GenerationSettings
}

func NewGenerationService(log *slog.Logger, accounts *AccountService, ledger *LedgerService, media provider.MediaGenerator, seo provider.SEOGenerator, ids IDGenerator, now Clock) *GenerationService {
	return &GenerationService{
		log:      log,
		accounts: accounts,
		ledger:   ledger,
		media:    media,
		seo:      seo,
		ids:      ids,
		now:      now,
	}
}

// Cost is the credit price of a request: half a credit per video minute
// rounded up, one credit for any image.
func Cost(kind models.GenerationKind, durationMinutes int) int {
	if kind == models.KindVideo {
		return (durationMinutes + 1) / 2
	}
	return 1
}

// Submit validates the request against the caller's plan and balance, runs
// the provider and, only when it succeeds, debits the account and records the
// result. Validation failures and provider failures leave no trace.
func (s *GenerationService) Submit(ctx context.Context, sess session.Session, req GenerationRequest) (*models.GenerationRecord, error) {
	account, err := s.accounts.Get(ctx, sess.AccountID())
	if err != nil {
		return nil, err
	}

	prompt, settings, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	plan, err := catalog.Plan(account.Plan)
	if err != nil {
		return nil, fmt.Errorf("resolve plan: %w", err)
	}
	if req.Kind == models.KindVideo && !account.IsAdmin && settings.DurationMinutes > plan.MaxVideoMinutes {
		return nil, fmt.Errorf("%w: the %s plan allows videos up to %d minutes", ErrPlanLimit, plan.Name, plan.MaxVideoMinutes)
	}

	model, err := resolveModel(req.Kind, &settings)
	if err != nil {
		return nil, err
	}
	if model.IsPremium && account.Plan == models.PlanFree && !account.IsAdmin {
		return nil, fmt.Errorf("%w: model %s %s requires the Plus or Premium plan", ErrPlanLimit, model.Name, model.Version)
	}

	cost := Cost(req.Kind, settings.DurationMinutes)
	if !account.IsAdmin && cost > account.Credits {
		return nil, fmt.Errorf("%w: %d required, %d available", ErrInsufficientCredits, cost, account.Credits)
	}

	media, seo, err := s.generate(ctx, req.Kind, prompt, settings)
	if err != nil {
		s.log.Error("generation failed", "account_id", account.ID, "kind", req.Kind, "model", model.ID, "err", err)
		return nil, err
	}

	if !account.IsAdmin {
		if err := s.accounts.Debit(ctx, account.ID, cost); err != nil {
			return nil, err
		}
	}

	record := &models.GenerationRecord{
		ID:           s.ids.NewID(),
		OwnerID:      account.ID,
		Kind:         req.Kind,
		Prompt:       prompt,
		Status:       models.StatusCompleted,
		MediaURL:     media.URL,
		ThumbnailURL: media.ThumbnailURL,
		CreatedAt:    s.now(),
		Settings:     settings,
		SEO:          seo,
	}
	if err := s.ledger.Append(ctx, record); err != nil {
		if !account.IsAdmin {
			if refundErr := s.accounts.Credit(ctx, account.ID, cost); refundErr != nil {
				s.log.Error("refund after ledger failure", "account_id", account.ID, "cost", cost, "err", refundErr)
			}
		}
		return nil, err
	}

	s.log.Info("generation completed",
		"account_id", account.ID,
		"generation_id", record.ID,
		"kind", record.Kind,
		"model", model.ID,
		"cost", cost,
		"seo", seo != nil,
	)
	return record, nil
}

// validate checks the prompt and the kind-specific fields and fills in
// defaults. The model and aspect ratio are checked later by resolveModel, once
// the plan's duration limit has been applied.
func (s *GenerationService) validate(req GenerationRequest) (string, models.GenerationSettings, error) {
	settings := req.Settings
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", settings, fmt.Errorf("%w: prompt is required", ErrValidation)
	}

	switch req.Kind {
	case models.KindVideo:
		if settings.DurationMinutes < 1 {
			return "", settings, fmt.Errorf("%w: duration must be at least one minute", ErrValidation)
		}
		if settings.AspectRatio == "" {
			settings.AspectRatio = "16:9"
		}
	case models.KindImage:
		settings.DurationMinutes = 0
		if settings.AspectRatio == "" {
			settings.AspectRatio = "1:1"
		}
	case models.KindThumbnail:
		if settings.TextOverlay == nil || strings.TrimSpace(settings.TextOverlay.Title) == "" {
			return "", settings, fmt.Errorf("%w: thumbnail title is required", ErrValidation)
		}
		overlay := *settings.TextOverlay
		overlay.Title = strings.TrimSpace(overlay.Title)
		settings.TextOverlay = &overlay
		settings.DurationMinutes = 0
		if settings.AspectRatio == "" {
			settings.AspectRatio = "16:9"
		}
	default:
		return "", settings, fmt.Errorf("%w: unknown generation type %q", ErrValidation, req.Kind)
	}
	if req.Kind != models.KindVideo {
		settings.SEOEnabled = false
	}
	return prompt, settings, nil
}

// resolveModel looks up the requested model, or the kind's default, and
// records its id in settings.
func resolveModel(kind models.GenerationKind, settings *models.GenerationSettings) (models.ProviderModel, error) {
	if !catalog.ValidAspectRatio(settings.AspectRatio) {
		return models.ProviderModel{}, fmt.Errorf("%w: unsupported aspect ratio %q", ErrValidation, settings.AspectRatio)
	}

	var (
		model models.ProviderModel
		ok    bool
	)
	if settings.ModelID == "" {
		model, ok = catalog.DefaultModel(kind)
	} else {
		model, ok = catalog.Model(kind, settings.ModelID)
	}
	if !ok {
		return models.ProviderModel{}, fmt.Errorf("%w: unknown model %q", ErrValidation, settings.ModelID)
	}
	settings.ModelID = model.ID
	return model, nil
}

// generate runs the media call and, for videos with SEO enabled, the SEO call
// alongside it. Only the media call can fail the request.
func (s *GenerationService) generate(ctx context.Context, kind models.GenerationKind, prompt string, settings models.GenerationSettings) (*provider.MediaResult, *models.SEOMetadata, error) {
	req := provider.MediaRequest{
		Kind:            kind,
		Prompt:          prompt,
		ModelID:         settings.ModelID,
		Style:           settings.Style,
		AspectRatio:     settings.AspectRatio,
		DurationMinutes: settings.DurationMinutes,
		Language:        settings.Language,
		VoiceID:         settings.VoiceID,
	}
	if settings.TextOverlay != nil {
		req.Title = settings.TextOverlay.Title
		req.Subtitle = settings.TextOverlay.Subtitle
	}

	var (
		media *provider.MediaResult
		seo   *models.SEOMetadata
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.media.GenerateMedia(gctx, req)
		if err != nil {
			return err
		}
		if res == nil || res.URL == "" {
			return fmt.Errorf("empty media result")
		}
		media = res
		return nil
	})
	if kind == models.KindVideo && settings.SEOEnabled {
		g.Go(func() error {
			meta, err := s.seo.GenerateSEO(gctx, prompt, settings.Language)
			if err != nil {
				s.log.Warn("seo generation failed, continuing without seo", "err", err)
				return nil
			}
			seo = meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	return media, seo, nil
}
