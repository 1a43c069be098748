// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the services.
//
// A [Validator] validates a value as a whole, or only the named fields when
// field names are passed.
package validators

import "context"

// Validator validates arbitrary input, optionally restricted to fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
