package validators

import "errors"

var (
	ErrUnsupportedType  = errors.New("unsupported type for validation")
	ErrUnknownField     = errors.New("unknown field for validation")
	ErrInvalidForm      = errors.New("invalid form")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)

// FieldError describes the first rule a form field broke. Error() is a
// sentence that can be shown next to the form.
type FieldError struct {
	// Field is the form field label, e.g. "Email".
	Field string

	// Rule is the validator tag that failed, e.g. "min".
	Rule string

	// Param is the tag parameter, e.g. "6" for min=6.
	Param string
}

func (e *FieldError) Error() string {
	switch e.Rule {
	case "required":
		return e.Field + " is required"
	case "min":
		return e.Field + " must be at least " + e.Param + " characters"
	case "email":
		return e.Field + " must be a valid email address"
	case "eqfield":
		return e.Field + " does not match"
	default:
		return e.Field + " is invalid"
	}
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidForm
}
