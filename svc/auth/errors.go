package auth

import (
	"errors"

	"github.com/dmitrymomot/authgate/pkg/validator"
)

var (
	// ErrUnauthorized covers every token failure: bad signature, missing claims, expired or revoked.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("wrong username or password")
	ErrTooFrequent        = errors.New("too many requests, please try again later")
	ErrCodeNotRequested   = errors.New("please request a verification code first")
	ErrCodeMismatch       = errors.New("incorrect verification code, please check and try again")
	ErrEmailTaken         = errors.New("this email address is already registered")
	ErrUsernameTaken      = errors.New("this username is already taken")
	// ErrRegistrationInProgress is returned while another attempt holds the
	// email or username claim. That attempt may still fail, so nothing is taken yet.
	ErrRegistrationInProgress = errors.New("a registration for this email or username is in progress, please try again shortly")
	// ErrInternal marks collaborator failures. The wrapped cause is for logs only.
	ErrInternal = errors.New("internal error, please contact the administrator")
)

const invalidParamsMessage = "invalid request parameters"

var userFacing = []error{
	ErrUnauthorized,
	ErrInvalidCredentials,
	ErrTooFrequent,
	ErrCodeNotRequested,
	ErrCodeMismatch,
	ErrEmailTaken,
	ErrUsernameTaken,
	ErrRegistrationInProgress,
}

// Message turns err into a sentence safe to show to end users.
// Anything not recognised becomes the internal error message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if validator.IsValidationError(err) {
		return invalidParamsMessage
	}
	for _, known := range userFacing {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return ErrInternal.Error()
}

func internal(err error) error {
	return errors.Join(ErrInternal, err)
}
