package api

import (
	"net/http"
	"strings"

	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/service"
)

type generationRequest struct {
	Type     models.GenerationKind     `json:"type"`
	Prompt   string                    `json:"prompt"`
	Settings models.GenerationSettings `json:"settings"`
}

type checkoutRequest struct {
	PlanID          models.PlanType `json:"planId"`
	PaymentMethodID string          `json:"paymentMethodId"`
}

func (s *Server) handleSubmitGeneration(w http.ResponseWriter, r *http.Request) {
	var req generationRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := sessionFrom(r.Context())
	record, err := s.svc.Generations.Submit(r.Context(), sess, service.GenerationRequest{
		Kind:     models.GenerationKind(strings.ToUpper(string(req.Type))),
		Prompt:   req.Prompt,
		Settings: req.Settings,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleListGenerations(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	records, err := s.svc.Ledger.ListForOwner(r.Context(), sess.AccountID(), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleListActivePaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.svc.PaymentMethods.ListActive(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, methods)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !s.decode(w, r, &req) {
		return
	}
	sess := sessionFrom(r.Context())
	planID := models.PlanType(strings.ToUpper(string(req.PlanID)))
	result, err := s.svc.Checkout.Checkout(r.Context(), sess, planID, req.PaymentMethodID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.refreshSession(r, sess.Token, result.Account)
	s.writeJSON(w, http.StatusOK, result)
}
