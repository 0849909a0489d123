package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/digkill/cinexa/internal/catalog"
	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/repository"
)

const (
	SignUpCredits = 10
	AdminCredits  = 999999
)

type AccountService struct {
	accounts AccountRepository
	ids      IDGenerator
	now      Clock
	log      *slog.Logger
}

type SignUpInput struct {
	Email    string
	Name     string
	Password string
}

// ProfileUpdate carries the fields a user may change. Nil fields are left
// untouched. Email cannot be changed.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
}

func NewAccountService(accounts AccountRepository, ids IDGenerator, now Clock, log *slog.Logger) *AccountService {
	return &AccountService{accounts: accounts, ids: ids, now: now, log: log}
}

func (s *AccountService) SignUp(ctx context.Context, input SignUpInput) (*models.Account, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:           s.ids.NewID(),
		Email:        email,
		DisplayName:  name,
		Plan:         models.PlanFree,
		Credits:      SignUpCredits,
		AvatarURL:    "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(name),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("account created", "account_id", account.ID)
	return account, nil
}

func (s *AccountService) SignIn(ctx context.Context, email, password string) (*models.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// EnsureAdmin creates the administrator account on first start. An existing
// account with the same email is returned unchanged.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, name, password string) (*models.Account, error) {
	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	admin := &models.Account{
		ID:           s.ids.NewID(),
		Email:        strings.ToLower(email),
		DisplayName:  name,
		Plan:         models.PlanPremium,
		Credits:      AdminCredits,
		IsAdmin:      true,
		AvatarURL:    "https://picsum.photos/200",
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.accounts.Upsert(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.log.Info("admin account seeded", "account_id", admin.ID)
	return admin, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", ErrNotFound, id)
	}
	return account, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Debit removes amount credits. The check against the current balance
// happens inside the repository, so a stale read by the caller cannot
// overdraw the account.
func (s *AccountService) Debit(ctx context.Context, id string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative debit", ErrValidation)
	}
	if err := s.accounts.AdjustCredits(ctx, id, -amount); err != nil {
		return mapCreditsError(id, err)
	}
	return nil
}

func (s *AccountService) Credit(ctx context.Context, id string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative credit", ErrValidation)
	}
	if err := s.accounts.AdjustCredits(ctx, id, amount); err != nil {
		return mapCreditsError(id, err)
	}
	return nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*models.Account, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	name := account.DisplayName
	if update.DisplayName != nil {
		name = strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrProfileUpdate)
		}
	}
	avatar := account.AvatarURL
	if update.AvatarURL != nil {
		avatar = strings.TrimSpace(*update.AvatarURL)
	}

	if err := s.accounts.UpdateProfile(ctx, id, name, avatar); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileUpdate, err)
	}
	return s.Get(ctx, id)
}

// UpgradePlan switches the account to plan and adds the plan's credit grant
// on top of the current balance. Both changes are applied together.
func (s *AccountService) UpgradePlan(ctx context.Context, id string, plan models.PlanType) (*models.Account, error) {
	def, err := catalog.Plan(plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := s.accounts.ApplyPlan(ctx, id, def.ID, def.Credits); err != nil {
		return nil, mapCreditsError(id, err)
	}
	s.log.Info("plan upgraded", "account_id", id, "plan", def.ID, "credits_added", def.Credits)
	return s.Get(ctx, id)
}

func mapCreditsError(id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrInsufficientBalance):
		return ErrInsufficientCredits
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: account %s", ErrNotFound, id)
	default:
		return fmt.Errorf("adjust credits: %w", err)
	}
}
