// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks client input against the business rules of jobs
// and accounts before any mutation is attempted.
//
// Field rules are declared with go-playground/validator tags on private rule
// structs; a Validator converts the incoming model into its rule struct and
// reports every failing field at once.
package validators

import "context"

// Validator validates an input value. When fields are given, only those
// (wire-named) fields are checked.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
