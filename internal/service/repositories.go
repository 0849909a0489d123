package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/digkill/cinexa/internal/models"
)

// Lookups return (nil, nil) when the record does not exist.

type AccountRepository interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Upsert(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id, displayName, avatarURL string) error
	ApplyPlan(ctx context.Context, id string, plan models.PlanType, credits int) error
	AdjustCredits(ctx context.Context, id string, delta int) error
}

type GenerationRepository interface {
	Get(ctx context.Context, id string) (*models.GenerationRecord, error)
	Append(ctx context.Context, record *models.GenerationRecord) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.GenerationRecord, error)
	ListAll(ctx context.Context) ([]models.GenerationRecord, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type PaymentMethodRepository interface {
	Get(ctx context.Context, id string) (*models.PaymentMethod, error)
	List(ctx context.Context) ([]models.PaymentMethod, error)
	Upsert(ctx context.Context, method *models.PaymentMethod) error
	Delete(ctx context.Context, id string) error
}

type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

type Clock func() time.Time

func SystemClock() time.Time { return time.Now().UTC() }
