package account

import (
	"time"

	"github.com/dmitrymomot/authgate/svc/auth"
)

type authorizeResponse struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Token    string    `json:"token"`
	Expire   time.Time `json:"expire"`
}

func toAuthorizeResponse(s *auth.Session) authorizeResponse {
	return authorizeResponse{
		Username: s.Account.Username,
		Role:     s.Account.Role,
		Token:    s.Token,
		Expire:   s.ExpiresAt,
	}
}

type identityResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Authorities []string  `json:"authorities"`
	Expire      time.Time `json:"expire"`
}

func toIdentityResponse(id *auth.Identity) identityResponse {
	return identityResponse{
		ID:          id.ID,
		Username:    id.Name,
		Authorities: id.Authorities,
		Expire:      id.ExpiresAt,
	}
}
