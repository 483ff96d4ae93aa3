package binder

import (
	"fmt"
	"net/http"
)

// Form binds an application/x-www-form-urlencoded body using `form:"name"` tags.
// Other content types are skipped with ErrBinderNotApplicable.
// Fields may be string, bool or int kinds; pointers mark optional fields.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if mediaType(r) != "application/x-www-form-urlencoded" {
			return ErrBinderNotApplicable
		}

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}
		return bindValues(v, "form", r.PostForm, ErrFailedToParseForm)
	}
}
