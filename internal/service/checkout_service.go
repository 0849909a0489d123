package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/digkill/cinexa/internal/catalog"
	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/session"
)

// CheckoutEvent is what admins receive to reconcile a manual transfer.
type CheckoutEvent struct {
	Account models.Account
	Plan    models.Plan
	Method  models.PaymentMethod
	At      time.Time
}

type Notifier interface {
	NotifyCheckout(ctx context.Context, event CheckoutEvent) error
}

type CheckoutResult struct {
	Account *models.Account      `json:"user"`
	Plan    models.Plan          `json:"plan"`
	Method  models.PaymentMethod `json:"paymentMethod"`
}

// CheckoutService upgrades plans against manually reconciled transfers. The
// confirmation is the customer's acknowledgement; no payment is verified.
type CheckoutService struct {
	accounts *AccountService
	methods  *PaymentMethodService
	notifier Notifier
	now      Clock
	log      *slog.Logger
}

func NewCheckoutService(accounts *AccountService, methods *PaymentMethodService, notifier Notifier, now Clock, log *slog.Logger) *CheckoutService {
	return &CheckoutService{accounts: accounts, methods: methods, notifier: notifier, now: now, log: log}
}

func (s *CheckoutService) Checkout(ctx context.Context, sess session.Session, planID models.PlanType, methodID string) (*CheckoutResult, error) {
	plan, err := catalog.Plan(planID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if plan.ID == models.PlanFree {
		return nil, fmt.Errorf("%w: the free plan cannot be purchased", ErrValidation)
	}

	method, err := s.methods.Get(ctx, methodID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, methodID)
		}
		return nil, err
	}
	if !method.IsActive {
		return nil, fmt.Errorf("%w: payment method %s is not available", ErrValidation, method.Name)
	}

	account, err := s.accounts.UpgradePlan(ctx, sess.AccountID(), plan.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		event := CheckoutEvent{Account: *account, Plan: plan, Method: *method, At: s.now()}
		if err := s.notifier.NotifyCheckout(ctx, event); err != nil {
			s.log.Error("checkout notification failed", "account_id", account.ID, "err", err)
		}
	}

	return &CheckoutResult{Account: account, Plan: plan, Method: *method}, nil
}
