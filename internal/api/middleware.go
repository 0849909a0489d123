package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/digkill/cinexa/internal/service"
	"github.com/digkill/cinexa/internal/session"
)

// SessionCookie carries the session token for browser clients. API clients
// send it as a bearer token instead.
const SessionCookie = "cinexa_session"

type sessionKey struct{}

func sessionFrom(ctx context.Context) session.Session {
	sess, _ := ctx.Value(sessionKey{}).(session.Session)
	return sess
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// sessionMiddleware resolves the caller and reloads their account so that
// balance and plan reflect the latest writes.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFrom(r)
		if token == "" {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "sign in required"})
			return
		}
		ctx := r.Context()
		stored, err := s.sessions.Get(ctx, token)
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		if stored == nil {
			s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "session expired"})
			return
		}

		account, err := s.svc.Accounts.Get(ctx, stored.AccountID())
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				_ = s.sessions.Delete(ctx, token)
				s.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "session expired"})
				return
			}
			s.internalError(w, r, err)
			return
		}

		sess := session.Session{Token: token, Account: *account}
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, sess)))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r.Context()).IsAdmin() {
			s.writeError(w, r, service.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(sessionFrom(r.Context()).AccountID()) {
			w.Header().Set("Retry-After", "60")
			s.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many generation requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accountLimiter keeps one token bucket per account.
type accountLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newAccountLimiter(perMinute, burst int) *accountLimiter {
	if perMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &accountLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (l *accountLimiter) allow(accountID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	lim, ok := l.limiters[accountID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[accountID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
