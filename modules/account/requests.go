package account

import (
	"strings"

	"github.com/dmitrymomot/authgate/pkg/sanitizer"
	"github.com/dmitrymomot/authgate/pkg/validator"
	"github.com/dmitrymomot/authgate/svc/mail"
)

// unknownIP keys the rate limiter when no requester address could be resolved.
const unknownIP = "unknown"

type askCodeRequest struct {
	Email string `query:"email"`
	Type  string `query:"type"`
}

func (r askCodeRequest) Validate() error {
	return validator.Apply(
		validator.ValidEmail("email", r.Email),
		validator.OneOf("type", r.Type, mail.TypeRegister, mail.TypeReset),
	)
}

type registerRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Code     string `json:"code" form:"code"`
	Password string `json:"password" form:"password"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// loginIdentifier normalizes email-looking identifiers the way registration stores them.
func loginIdentifier(s string) string {
	s = sanitizer.Trim(s)
	if strings.Contains(s, "@") {
		return sanitizer.NormalizeEmail(s)
	}
	return s
}
