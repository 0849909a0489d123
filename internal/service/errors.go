package service

import "errors"

// Every error returned by the services wraps one of these, so callers can
// classify failures with errors.Is while still showing the full message.
var (
	ErrValidation           = errors.New("invalid request")
	ErrPlanLimit            = errors.New("plan limit exceeded")
	ErrInsufficientCredits  = errors.New("insufficient credits")
	ErrProvider             = errors.New("generation provider failed")
	ErrProfileUpdate        = errors.New("profile update failed")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("admin access required")
	ErrEmailTaken           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrConfirmationRequired = errors.New("confirmation required")
)
