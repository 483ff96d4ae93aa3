package account

import (
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/svc/auth"
)

// RequireAuth validates the Authorization header and stores the identity in
// the request context. Failures are answered with a 401 or 500 envelope.
func (m *Module) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.svc.Tokens.Validate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			if renderErr := fail(err).Render(w, r); renderErr != nil {
				m.log.ErrorContext(r.Context(), "failed to render auth error", logger.Error(renderErr))
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
	})
}
