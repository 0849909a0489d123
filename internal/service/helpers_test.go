package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/provider"
	"github.com/digkill/cinexa/internal/repository/memory"
	"github.com/digkill/cinexa/internal/session"
	"github.com/digkill/cinexa/pkg/logger"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

type fakeMedia struct {
	mu       sync.Mutex
	calls    int
	requests []provider.MediaRequest
	err      error
}

func (f *fakeMedia) GenerateMedia(_ context.Context, req provider.MediaRequest) (*provider.MediaResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &provider.MediaResult{URL: "https://cdn.test/" + string(req.Kind)}, nil
}

type fakeSEO struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeSEO) GenerateSEO(_ context.Context, prompt, _ string) (*models.SEOMetadata, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.SEOMetadata{Title: prompt, Tags: []string{"test"}}, nil
}

type failingGenerations struct {
	*memory.GenerationRepository
}

func (failingGenerations) Append(context.Context, *models.GenerationRecord) error {
	return errors.New("disk full")
}

type fixture struct {
	accountsRepo    *memory.AccountRepository
	generationsRepo GenerationRepository
	methodsRepo     *memory.PaymentMethodRepository

	accounts    *AccountService
	ledger      *LedgerService
	generations *GenerationService
	methods     *PaymentMethodService
	media       *fakeMedia
	seo         *fakeSEO
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithGenerations(t, memory.NewGenerationRepository())
}

func newFixtureWithGenerations(t *testing.T, generations GenerationRepository) *fixture {
	t.Helper()
	log := logger.Discard()
	ids := &seqIDs{}
	clock := fixedClock(testNow)

	f := &fixture{
		accountsRepo:    memory.NewAccountRepository(),
		generationsRepo: generations,
		methodsRepo:     memory.NewPaymentMethodRepository(),
		media:           &fakeMedia{},
		seo:             &fakeSEO{},
	}
	f.accounts = NewAccountService(f.accountsRepo, ids, clock, log)
	f.ledger = NewLedgerService(f.generationsRepo)
	f.generations = NewGenerationService(log, f.accounts, f.ledger, f.media, f.seo, ids, clock)
	f.methods = NewPaymentMethodService(f.methodsRepo, ids, log)
	return f
}

func (f *fixture) seedAccount(t *testing.T, id string, plan models.PlanType, credits int, admin bool) session.Session {
	t.Helper()
	account := models.Account{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: id,
		Plan:        plan,
		Credits:     credits,
		IsAdmin:     admin,
		CreatedAt:   testNow,
	}
	require.NoError(t, f.accountsRepo.Upsert(context.Background(), &account))
	return session.Session{Token: "token-" + id, Account: account}
}

func (f *fixture) credits(t *testing.T, id string) int {
	t.Helper()
	a, err := f.accounts.Get(context.Background(), id)
	require.NoError(t, err)
	return a.Credits
}
