package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/service"
)

type paymentMethodRequest struct {
	Name          string `json:"name"`
	Detail        string `json:"detail"`
	Icon          string `json:"icon"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	Beneficiary   string `json:"beneficiary"`
}

type paymentMethodPatchRequest struct {
	Name          *string `json:"name"`
	Detail        *string `json:"detail"`
	Icon          *string `json:"icon"`
	BankName      *string `json:"bankName"`
	AccountNumber *string `json:"accountNumber"`
	Beneficiary   *string `json:"beneficiary"`
}

type saveRequest struct {
	Confirm bool `json:"confirm"`
}

type draftResponse struct {
	HasChanges bool                   `json:"hasChanges"`
	Changes    []models.PaymentMethod `json:"changes"`
}

type saveResponse struct {
	Saved   bool                   `json:"saved"`
	Changes []models.PaymentMethod `json:"changes,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Admin.Stats(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Admin.Users(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleListAllGenerations(w http.ResponseWriter, r *http.Request) {
	records, err := s.svc.Ledger.ListAll(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

// handleViewPaymentMethods shows the registry with the caller's staged edits
// applied.
func (s *Server) handleViewPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.svc.PaymentMethods.View(r.Context(), sessionFrom(r.Context()).AccountID())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, methods)
}

func (s *Server) handleCreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if !s.decode(w, r, &req) {
		return
	}
	method, err := s.svc.PaymentMethods.Create(r.Context(), service.CreatePaymentMethodInput{
		Name:          req.Name,
		Detail:        req.Detail,
		Icon:          req.Icon,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Beneficiary:   req.Beneficiary,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, method)
}

func (s *Server) handleDeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.PaymentMethods.Delete(r.Context(), methodID(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTogglePaymentMethod(w http.ResponseWriter, r *http.Request) {
	owner := sessionFrom(r.Context()).AccountID()
	method, err := s.svc.PaymentMethods.Toggle(r.Context(), owner, methodID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, method)
}

func (s *Server) handleEditPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodPatchRequest
	if !s.decode(w, r, &req) {
		return
	}
	owner := sessionFrom(r.Context()).AccountID()
	method, err := s.svc.PaymentMethods.Edit(r.Context(), owner, methodID(r), service.PaymentMethodPatch{
		Name:          req.Name,
		Detail:        req.Detail,
		Icon:          req.Icon,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		Beneficiary:   req.Beneficiary,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, method)
}

func (s *Server) handleViewDraft(w http.ResponseWriter, r *http.Request) {
	owner := sessionFrom(r.Context()).AccountID()
	changes, err := s.svc.PaymentMethods.Staged(r.Context(), owner)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if changes == nil {
		changes = []models.PaymentMethod{}
	}
	s.writeJSON(w, http.StatusOK, draftResponse{HasChanges: len(changes) > 0, Changes: changes})
}

func (s *Server) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	s.svc.PaymentMethods.Discard(sessionFrom(r.Context()).AccountID())
	w.WriteHeader(http.StatusNoContent)
}

// handleSavePaymentMethods commits the caller's staged edits. The request's
// confirm flag is the approval; without it the pending changes are returned
// with 409 and stay staged.
func (s *Server) handleSavePaymentMethods(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if !s.decode(w, r, &req) {
		return
	}
	owner := sessionFrom(r.Context()).AccountID()
	var pending []models.PaymentMethod
	saved, err := s.svc.PaymentMethods.Save(r.Context(), owner, service.ConfirmFunc(func(changes []models.PaymentMethod) bool {
		pending = changes
		return req.Confirm
	}))
	if err != nil {
		if pending != nil && !req.Confirm {
			s.writeJSON(w, http.StatusConflict, struct {
				errorResponse
				Changes []models.PaymentMethod `json:"changes"`
			}{errorResponse{Error: err.Error()}, pending})
			return
		}
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, saveResponse{Saved: saved, Changes: pending})
}

func methodID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}
