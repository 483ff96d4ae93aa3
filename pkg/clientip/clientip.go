package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are consulted in order when proxy headers are trusted.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// Resolver extracts the requester IP. By default only RemoteAddr is used;
// proxy headers can be forged by clients and are read only when trusted.
type Resolver struct {
	trustProxyHeaders bool
}

type Option func(*Resolver)

// WithTrustedProxyHeaders enables CF-Connecting-IP, DO-Connecting-IP,
// X-Forwarded-For and X-Real-IP. Enable only behind a proxy that overwrites them.
func WithTrustedProxyHeaders(trust bool) Option {
	return func(r *Resolver) {
		r.trustProxyHeaders = trust
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IP returns the normalized client IP, or "" when none can be parsed.
func (res *Resolver) IP(r *http.Request) string {
	if res.trustProxyHeaders {
		for _, header := range proxyHeaders {
			if ip := fromHeader(r.Header.Get(header)); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved IP in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := SetIPToContext(r.Context(), res.IP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// fromHeader returns the first valid IP of a possibly comma separated list.
func fromHeader(value string) string {
	for ip := range strings.SplitSeq(value, ",") {
		if parsed := parseIP(ip); parsed != "" {
			return parsed
		}
	}
	return ""
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
