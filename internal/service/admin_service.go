package service

import (
	"context"

	"github.com/digkill/cinexa/internal/catalog"
	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/session"
)

type Stats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalGenerations int `json:"totalGenerations"`
	// RevenueEstimate is the monthly price of every paid plan in use.
	RevenueEstimate int `json:"revenueEstimate"`
}

type AdminService struct {
	accounts *AccountService
	ledger   *LedgerService
}

func NewAdminService(accounts *AccountService, ledger *LedgerService) *AdminService {
	return &AdminService{accounts: accounts, ledger: ledger}
}

func (s *AdminService) Stats(ctx context.Context, sess session.Session) (*Stats, error) {
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	generations, err := s.ledger.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalUsers: len(accounts), TotalGenerations: generations}
	for _, a := range accounts {
		if a.Plan == models.PlanFree {
			continue
		}
		if plan, err := catalog.Plan(a.Plan); err == nil {
			stats.RevenueEstimate += plan.Price
		}
	}
	return stats, nil
}

func (s *AdminService) Users(ctx context.Context, sess session.Session) ([]models.Account, error) {
	if !sess.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.accounts.List(ctx)
}
