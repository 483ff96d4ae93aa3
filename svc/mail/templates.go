package mail

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

// DefaultCodeValidity is shown when neither the message nor the Dispatcher
// carries a lifetime. It matches the issuer's default code TTL.
const DefaultCodeValidity = 3 * time.Minute

type mailTemplate struct {
	subject string
	intro   string
}

var mailTemplates = map[string]mailTemplate{
	TypeRegister: {
		subject: "Welcome! Verify your email address",
		intro:   "Thanks for signing up. Your registration verification code is",
	},
	TypeReset: {
		subject: "Your password reset verification code",
		intro:   "You asked to reset your password. Your verification code is",
	},
}

func verificationBody(t mailTemplate, code string, validFor time.Duration) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!doctype html><html><body><p>%s <strong>%s</strong>.</p><p>The code is valid for %s. If you did not request it, you can ignore this message.</p></body></html>`,
			templ.EscapeString(t.intro), templ.EscapeString(code), humanDuration(validFor),
		)
		return err
	})
}

// humanDuration renders whole minutes or seconds in words, anything else as time.Duration does.
func humanDuration(d time.Duration) string {
	switch {
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	case d >= time.Second && d%time.Second == 0:
		return plural(int(d/time.Second), "second")
	}
	return d.String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
