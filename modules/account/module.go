package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authgate/handler"
	"github.com/dmitrymomot/authgate/pkg/binder"
	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/sanitizer"
	"github.com/dmitrymomot/authgate/svc/auth"
)

// Services are the auth core operations served over HTTP.
type Services struct {
	Tokens        *auth.TokenService
	Codes         *auth.CodeIssuer
	Registrar     *auth.Registrar
	Authenticator *auth.Authenticator
}

// Module serves the account API.
type Module struct {
	svc  Services
	log  *slog.Logger
	errs handler.ErrorHandler[handler.Context]
}

func New(svc Services, log *slog.Logger) *Module {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("account.http"))
	return &Module{
		svc:  svc,
		log:  log,
		errs: handler.NewErrorHandler(log, classify),
	}
}

// Routes mounts:
//
//	GET  /api/auth/ask-code?email=&type=
//	POST /api/auth/register
//	POST /api/auth/login
//	POST /api/auth/logout
//	GET  /api/account/me
//
// The caller is expected to install clientip middleware upstream.
func (m *Module) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/ask-code", handler.Wrap(m.askCode,
			handler.WithBinders[handler.Context, askCodeRequest](binder.Query()),
			handler.WithErrorHandler[handler.Context, askCodeRequest](m.errs),
		))
		r.Post("/register", handler.Wrap(m.register,
			handler.WithBinders[handler.Context, registerRequest](binder.JSON(), binder.Form()),
			handler.WithErrorHandler[handler.Context, registerRequest](m.errs),
		))
		r.Post("/login", handler.Wrap(m.login,
			handler.WithBinders[handler.Context, loginRequest](binder.JSON(), binder.Form()),
			handler.WithErrorHandler[handler.Context, loginRequest](m.errs),
		))
		r.Post("/logout", handler.Wrap(m.logout,
			handler.WithErrorHandler[handler.Context, struct{}](m.errs),
		))
	})

	r.Route("/api/account", func(r chi.Router) {
		r.Use(m.RequireAuth)
		r.Get("/me", handler.Wrap(m.me,
			handler.WithErrorHandler[handler.Context, struct{}](m.errs),
		))
	})

	return r
}

func (m *Module) askCode(ctx handler.Context, req askCodeRequest) handler.Response {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Type = sanitizer.Trim(req.Type)
	if err := req.Validate(); err != nil {
		return fail(err)
	}

	ip := clientip.GetIPFromContext(ctx)
	if ip == "" {
		ip = unknownIP
	}
	if err := m.svc.Codes.Issue(ctx, req.Type, req.Email, ip); err != nil {
		return fail(err)
	}
	return handler.OK(nil)
}

func (m *Module) register(ctx handler.Context, req registerRequest) handler.Response {
	err := m.svc.Registrar.Register(ctx, auth.RegisterParams{
		Username: sanitizer.Trim(req.Username),
		Email:    sanitizer.NormalizeEmail(req.Email),
		Code:     sanitizer.Trim(req.Code),
		Password: req.Password,
	})
	if err != nil {
		return fail(err)
	}
	return handler.OK(nil)
}

func (m *Module) login(ctx handler.Context, req loginRequest) handler.Response {
	session, err := m.svc.Authenticator.Login(ctx, loginIdentifier(req.Username), req.Password)
	if err != nil {
		return fail(err)
	}
	return handler.OK(toAuthorizeResponse(session))
}

func (m *Module) logout(ctx handler.Context, _ struct{}) handler.Response {
	ok, err := m.svc.Tokens.Revoke(ctx, ctx.Request().Header.Get("Authorization"))
	if err != nil {
		return fail(err)
	}
	if !ok {
		return handler.Fail(http.StatusBadRequest, logoutFailedMessage)
	}
	return handler.OK(nil)
}

func (m *Module) me(ctx handler.Context, _ struct{}) handler.Response {
	id := auth.IdentityFromContext(ctx)
	if id == nil {
		return fail(auth.ErrUnauthorized)
	}
	return handler.OK(toIdentityResponse(id))
}
