// Package validator provides small composable validation rules.
//
//	err := validator.Apply(
//		validator.ValidEmail("email", p.Email),
//		validator.Digits("code", p.Code, 6),
//	)
//	if validator.IsValidationError(err) { ... }
package validator
