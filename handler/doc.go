// Package handler provides type-safe HTTP request handling.
//
// A HandlerFunc receives a request already decoded into a typed struct and
// returns a Response. Wrap turns it into an http.HandlerFunc, running the
// configured binders, decorators and error handler:
//
//	r.Post("/api/auth/login", handler.Wrap(h.login,
//		handler.WithBinders[handler.Context, loginRequest](binder.JSON(), binder.Form()),
//		handler.WithErrorHandler[handler.Context, loginRequest](errHandler),
//	))
//
// Every JSON response uses the same envelope:
//
//	{"code": 200, "message": "success", "data": {...}}
//	{"code": 400, "message": "this username is already taken"}
//
// OK and Fail build those responses. NewErrorHandler logs binding and render
// failures with the chi request id and renders them through a Classifier.
package handler
