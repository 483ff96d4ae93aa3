package auth_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authgate/pkg/validator"
	"github.com/dmitrymomot/authgate/svc/auth"
)

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"too frequent", auth.ErrTooFrequent, "too many requests, please try again later"},
		{"wrapped mismatch", fmt.Errorf("register: %w", auth.ErrCodeMismatch), "incorrect verification code, please check and try again"},
		{"email taken", auth.ErrEmailTaken, "this email address is already registered"},
		{"registration in progress", auth.ErrRegistrationInProgress, "a registration for this email or username is in progress, please try again shortly"},
		{"validation", validator.ValidationErrors{{Field: "email", Message: "bad"}}, "invalid request parameters"},
		{"internal detail hidden", errors.Join(auth.ErrInternal, errors.New("dial tcp 10.0.0.5:6379")), "internal error, please contact the administrator"},
		{"unknown error", errors.New("boom"), "internal error, please contact the administrator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, auth.Message(tt.err))
		})
	}
}
