// Package clientip resolves the requester IP used as the rate-limit key for
// verification codes.
//
// The default Resolver trusts only the TCP peer address. Behind a reverse
// proxy enable WithTrustedProxyHeaders so CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For and X-Real-IP are honoured, in that order.
package clientip
