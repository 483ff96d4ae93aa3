// Package binder decodes HTTP request data into typed request structs.
//
// Each binder handles one source and is selected by struct tags:
//
//   - JSON(): application/json bodies, `json:"name"` tags, strict decoding
//   - Form(): application/x-www-form-urlencoded bodies, `form:"name"` tags
//   - Query(): URL query parameters, `query:"name"` tags
//
// Body binders return ErrBinderNotApplicable for other content types, so a
// handler may accept both JSON and form posts by listing both:
//
//	type loginRequest struct {
//		Username string `json:"username" form:"username"`
//		Password string `json:"password" form:"password"`
//	}
//
//	handler.Wrap(h.login, handler.WithBinders[handler.Context, loginRequest](
//		binder.JSON(),
//		binder.Form(),
//	))
//
// Any other failure wraps one of the ErrFailedToParse* errors.
package binder
