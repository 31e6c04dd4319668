// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/MKhiriev/vault-guard/models"
	"github.com/go-playground/validator/v10"
)

// Field name constants used to restrict validation to a subset of a form.
// They match the struct field names of the form types.
const (
	FieldUsername        = "Username"
	FieldEmail           = "Email"
	FieldPassword        = "Password"
	FieldConfirmPassword = "ConfirmPassword"
	FieldAccountName     = "AccountName"
)

// fieldLabels are the names shown to the user in a [FieldError].
var fieldLabels = map[string]string{
	FieldUsername:        "Username",
	FieldEmail:           "Email",
	FieldPassword:        "Password",
	FieldConfirmPassword: "Password confirmation",
	FieldAccountName:     "Account name",
}

// FormValidator implements [Validator] for the client forms and the
// password request bodies in models. It wraps a single validator.Validate,
// which caches struct metadata and is safe for concurrent use.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator constructs a FormValidator and returns it as the
// Validator interface.
func NewFormValidator() Validator {
	return &FormValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks obj against its struct tags. Supported types are
// RegisterForm, LoginForm, AddForm, EditForm, models.PasswordCreate and
// models.PasswordUpdate, by value or pointer. When fields are given only
// those are checked; each must name a field of obj.
//
// The first violation is returned as a [*FieldError].
func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case RegisterForm, LoginForm, AddForm, EditForm, models.PasswordCreate:
		return v.validateStruct(ctx, value, fields...)
	case *RegisterForm, *LoginForm, *AddForm, *EditForm, *models.PasswordCreate:
		return v.validateStruct(ctx, value, fields...)
	case models.PasswordUpdate:
		return v.validatePasswordUpdate(ctx, value, fields...)
	case *models.PasswordUpdate:
		return v.validatePasswordUpdate(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *FormValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, obj)
	} else {
		if err = checkFieldNames(obj, fields); err != nil {
			return err
		}
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	}
	return toFieldError(err)
}

// validatePasswordUpdate additionally rejects an update with no fields.
func (v *FormValidator) validatePasswordUpdate(ctx context.Context, upd models.PasswordUpdate, fields ...string) error {
	if len(fields) == 0 && upd.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	return v.validateStruct(ctx, upd, fields...)
}

func checkFieldNames(obj any, fields []string) error {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, f := range fields {
		if _, ok := t.FieldByName(f); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

func toFieldError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	first := verrs[0]
	label, ok := fieldLabels[first.StructField()]
	if !ok {
		label = first.StructField()
	}
	return &FieldError{Field: label, Rule: first.Tag(), Param: first.Param()}
}
