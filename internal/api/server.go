package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/digkill/cinexa/internal/service"
	"github.com/digkill/cinexa/internal/session"
)

// Services bundles the operations exposed over HTTP.
type Services struct {
	Accounts       *service.AccountService
	Ledger         *service.LedgerService
	Generations    *service.GenerationService
	PaymentMethods *service.PaymentMethodService
	Checkout       *service.CheckoutService
	Admin          *service.AdminService
}

// AvatarStorage persists uploaded profile pictures and returns their URL.
type AvatarStorage interface {
	UploadAvatar(ctx context.Context, ownerID string, data []byte, contentType string) (string, error)
}

type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	// GenerationsPerMinute and GenerationBurst throttle POST /generations per
	// account. Zero disables throttling.
	GenerationsPerMinute int
	GenerationBurst      int
}

type Server struct {
	opts     Options
	log      *slog.Logger
	svc      Services
	sessions session.Store
	avatars  AvatarStorage
	limiter  *accountLimiter
	now      func() time.Time
	router   *chi.Mux
}

// NewServer builds the router. avatars may be nil, in which case avatar
// uploads answer 503.
func NewServer(opts Options, log *slog.Logger, svc Services, sessions session.Store, avatars AvatarStorage) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(log))
	r.Use(middleware.Recoverer)

	s := &Server{
		opts:     opts,
		log:      log,
		svc:      svc,
		sessions: sessions,
		avatars:  avatars,
		limiter:  newAccountLimiter(opts.GenerationsPerMinute, opts.GenerationBurst),
		now:      time.Now,
		router:   r,
	}

	r.Post("/auth/signup", s.handleSignUp)
	r.Post("/auth/signin", s.handleSignIn)
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/plans", s.handleListPlans)
		r.Get("/models", s.handleListModels)
		r.Get("/options", s.handleListOptions)
		r.Get("/inspiration", s.handleInspiration)
	})

	r.Group(func(protected chi.Router) {
		protected.Use(s.sessionMiddleware)
		protected.Post("/auth/signout", s.handleSignOut)
		protected.Get("/me", s.handleMe)
		protected.Patch("/me", s.handleUpdateProfile)
		protected.Post("/me/avatar", s.handleUploadAvatar)

		protected.Get("/generations", s.handleListGenerations)
		protected.With(s.rateLimitMiddleware).Post("/generations", s.handleSubmitGeneration)

		protected.Get("/payment-methods", s.handleListActivePaymentMethods)
		protected.Post("/checkout", s.handleCheckout)

		protected.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/stats", s.handleStats)
			r.Get("/users", s.handleListUsers)
			r.Get("/generations", s.handleListAllGenerations)
			r.Route("/payment-methods", func(r chi.Router) {
				r.Get("/", s.handleViewPaymentMethods)
				r.Post("/", s.handleCreatePaymentMethod)
				r.Get("/draft", s.handleViewDraft)
				r.Delete("/draft", s.handleDiscardDraft)
				r.Post("/save", s.handleSavePaymentMethods)
				r.Delete("/{id}", s.handleDeletePaymentMethod)
				r.Post("/{id}/toggle", s.handleTogglePaymentMethod)
				r.Patch("/{id}", s.handleEditPaymentMethod)
			})
		})
	})
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Video generation can keep a request open for minutes.
		WriteTimeout: 10 * time.Minute,
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("api shutdown error", "err", err)
		}
	}()

	s.log.Info("api listening", "addr", s.opts.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api listen: %w", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError translates service errors into HTTP statuses. Anything it does
// not recognise is logged and reported as an internal error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrProfileUpdate):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrInsufficientCredits):
		status = http.StatusPaymentRequired
	case errors.Is(err, service.ErrPlanLimit), errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrConfirmationRequired):
		status = http.StatusConflict
	case errors.Is(err, service.ErrProvider):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.internalError(w, r, err)
		return
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("api handler error", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
