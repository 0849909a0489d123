package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/digkill/cinexa/internal/models"
)

// KeyPrefix namespaces persisted sessions inside a shared key-value store.
const KeyPrefix = "cinexa_user:"

// DefaultTTL bounds how long an idle session survives in the store.
const DefaultTTL = 30 * 24 * time.Hour

// Session identifies the caller of a service operation.
type Session struct {
	Token   string
	Account models.Account
}

func (s Session) AccountID() string { return s.Account.ID }

func (s Session) IsAdmin() bool { return s.Account.IsAdmin }

// Store persists the serialized Account of each signed-in session.
type Store interface {
	Get(ctx context.Context, token string) (*Session, error)
	Put(ctx context.Context, sess Session) error
	Delete(ctx context.Context, token string) error
}

func NewToken() string {
	return uuid.NewString()
}

func key(token string) string {
	return KeyPrefix + token
}

func encode(account models.Account) ([]byte, error) {
	// PasswordHash is excluded by its json tag.
	data, err := json.Marshal(account)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

func decode(token string, data []byte) (*Session, error) {
	var account models.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &Session{Token: token, Account: account}, nil
}

var errEmptyToken = errors.New("session token is empty")
