package memory

import (
	"context"
	"sync"

	"github.com/digkill/cinexa/internal/models"
)

// PaymentMethodRepository preserves insertion order on List.
type PaymentMethodRepository struct {
	mu      sync.RWMutex
	methods []models.PaymentMethod
}

func NewPaymentMethodRepository() *PaymentMethodRepository {
	return &PaymentMethodRepository{}
}

func (r *PaymentMethodRepository) Get(_ context.Context, id string) (*models.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.methods {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func (r *PaymentMethodRepository) List(_ context.Context) ([]models.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.PaymentMethod(nil), r.methods...), nil
}

func (r *PaymentMethodRepository) Upsert(_ context.Context, method *models.PaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.methods {
		if m.ID == method.ID {
			r.methods[i] = *method
			return nil
		}
	}
	r.methods = append(r.methods, *method)
	return nil
}

func (r *PaymentMethodRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.methods {
		if m.ID == id {
			r.methods = append(r.methods[:i], r.methods[i+1:]...)
			return nil
		}
	}
	return nil
}
