// Package jwt encodes session claims as HS256 JSON Web Tokens using
// github.com/golang-jwt/jwt/v5.
//
// The codec only proves integrity: it rejects foreign signatures, other
// algorithms and tokens missing any of id, name, authorities, jti or exp.
// Expiry and revocation are enforced by svc/auth.
//
//	codec, err := jwt.NewFromString(cfg.Secret, cfg.PreviousSecrets...)
//	token, err := codec.Sign(jwt.Claims{SubjectID: 1, Name: "alice", ...})
//	claims, err := codec.ParseHeader(r.Header.Get("Authorization"))
package jwt
