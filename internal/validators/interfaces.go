// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides the pre-check run on user input before it is
// sent to the backend.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - Forms: RegisterForm, LoginForm, AddForm and EditForm mirror the
//     terminal UI forms and carry their rules as struct tags.
//
// The backend stays authoritative: a form that passes here can still be
// rejected by it, and that error is shown as-is.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
