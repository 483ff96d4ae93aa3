package validator

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

// LenBetween counts runes, not bytes.
func LenBetween(field, value string, min, max int) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			return n >= min && n <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d characters long", min, max),
		},
	}
}

// MaxBytes bounds the UTF-8 encoded size, for values handed to byte-limited
// algorithms such as bcrypt.
func MaxBytes(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return len(value) <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d bytes long", max),
		},
	}
}

func NoWhitespace(field, value string) Rule {
	return Rule{
		Check: func() bool { return !strings.ContainsFunc(value, unicode.IsSpace) },
		Error: ValidationError{Field: field, Message: "must not contain whitespace"},
	}
}

// ValidEmail accepts a bare address only: no display name, a dot in the domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" || len(value) > 254 {
				return false
			}
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value || addr.Name != "" {
				return false
			}
			local, domain, ok := strings.Cut(value, "@")
			return ok && local != "" && strings.Contains(domain, ".") &&
				!strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

// Digits checks value is exactly length ASCII digits.
func Digits(field, value string, length int) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != length {
				return false
			}
			for _, r := range value {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be %d digits", length),
		},
	}
}

func OneOf(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{
			Field:   field,
			Message: "must be one of: " + strings.Join(allowed, ", "),
		},
	}
}
