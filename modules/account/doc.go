// Package account exposes the auth core over HTTP.
//
// All responses use the handler envelope {"code", "message", "data"}. Login
// and registration accept both JSON and form-urlencoded bodies. Authenticated
// routes sit behind RequireAuth, which puts an *auth.Identity in the request
// context.
package account
