package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/digkill/cinexa/internal/models"
	"github.com/digkill/cinexa/internal/service"
	"github.com/digkill/cinexa/internal/session"
	"github.com/digkill/cinexa/internal/storage"
)

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  *models.Account `json:"user"`
}

type profileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatarUrl"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !s.decode(w, r, &req) {
		return
	}
	account, err := s.svc.Accounts.SignUp(r.Context(), service.SignUpInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.startSession(w, r, http.StatusCreated, account)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !s.decode(w, r, &req) {
		return
	}
	account, err := s.svc.Accounts.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.startSession(w, r, http.StatusOK, account)
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, status int, account *models.Account) {
	sess := session.Session{Token: session.NewToken(), Account: *account}
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		s.internalError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.writeJSON(w, status, authResponse{Token: sess.Token, User: account})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := s.sessions.Delete(r.Context(), sess.Token); err != nil {
		s.internalError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	account := sessionFrom(r.Context()).Account
	s.writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.updateProfile(w, r, service.ProfileUpdate{DisplayName: req.Name, AvatarURL: req.AvatarURL})
}

// handleUploadAvatar accepts a multipart form with an "avatar" file.
func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	if s.avatars == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "avatar uploads are not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxAvatarBytes+1<<20)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "avatar file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxAvatarBytes+1))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read avatar"})
		return
	}

	sess := sessionFrom(r.Context())
	url, err := s.avatars.UploadAvatar(r.Context(), sess.AccountID(), data, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		case errors.Is(err, storage.ErrEmptyUpload), errors.Is(err, storage.ErrUnsupportedMedia):
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		default:
			s.internalError(w, r, err)
		}
		return
	}
	s.updateProfile(w, r, service.ProfileUpdate{AvatarURL: &url})
}

// updateProfile applies the change and refreshes the stored session copy.
func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request, update service.ProfileUpdate) {
	sess := sessionFrom(r.Context())
	account, err := s.svc.Accounts.UpdateProfile(r.Context(), sess.AccountID(), update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.refreshSession(r, sess.Token, account)
	s.writeJSON(w, http.StatusOK, account)
}

func (s *Server) refreshSession(r *http.Request, token string, account *models.Account) {
	if err := s.sessions.Put(r.Context(), session.Session{Token: token, Account: *account}); err != nil {
		s.log.Warn("refresh session", "account_id", account.ID, "err", err)
	}
}
