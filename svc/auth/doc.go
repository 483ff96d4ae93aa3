// Package auth is the authentication core: session tokens with revocation,
// email verification codes behind a per-IP rate limit, and self-service
// registration that stays race-free when the same identity is submitted
// concurrently.
//
// Every service here takes its collaborators as constructor arguments and
// shares one Option set (clock, logger, TTLs, hasher). Errors returned to
// callers are the sentinels in errors.go; Message converts any of them to a
// sentence safe to show to end users. Collaborator failures are wrapped with
// ErrInternal and logged with detail.
//
// Key layout in the shared key-value store:
//
//	auth:jwt:blacklist:<jti>            revoked token, expires with the token
//	auth:verify:limit:<ip>              code request window
//	auth:verify:email:<email>           live verification code
//	auth:register:claim:email:<email>   in-flight registration
//	auth:register:claim:username:<name> in-flight registration
package auth
