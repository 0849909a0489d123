// Package memory holds process-local repositories used for development, tests
// and single-node deployments without MySQL.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/repository"
)

type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	order    []string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]models.Account)}
}

func (r *AccountRepository) Get(_ context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AccountRepository) List(_ context.Context) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Account, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.accounts[id])
	}
	return out, nil
}

func (r *AccountRepository) Upsert(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.accounts {
		if id != account.ID && strings.EqualFold(a.Email, account.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	if _, ok := r.accounts[account.ID]; !ok {
		r.order = append(r.order, account.ID)
	}
	stored := *account
	stored.Email = strings.ToLower(stored.Email)
	r.accounts[account.ID] = stored
	return nil
}

func (r *AccountRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return nil
	}
	delete(r.accounts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *AccountRepository) UpdateProfile(_ context.Context, id, displayName, avatarURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.DisplayName = displayName
	a.AvatarURL = avatarURL
	r.accounts[id] = a
	return nil
}

func (r *AccountRepository) ApplyPlan(_ context.Context, id string, plan models.PlanType, credits int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Plan = plan
	a.Credits += credits
	r.accounts[id] = a
	return nil
}

func (r *AccountRepository) AdjustCredits(_ context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if a.Credits+delta < 0 {
		return repository.ErrInsufficientBalance
	}
	a.Credits += delta
	r.accounts[id] = a
	return nil
}
