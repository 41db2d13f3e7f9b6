// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

/*
Package procedure exposes a guarded passthrough to database functions.

Legacy reporting and data-maintenance routines live as functions inside the
database. Rather than mirroring each one as a dedicated endpoint, the admin
console calls them through a single execute operation.

# Security

Function names are validated against a strict identifier grammar and arguments
are always bound as placeholders, so no caller-controlled SQL text is ever
interpolated. The endpoint itself is admin-only.
*/
package procedure

import "regexp"

// identifierPattern accepts a lowercase SQL identifier, optionally
// schema-qualified (e.g. "tour.fn_recalculate_prices").
var identifierPattern = regexp.MustCompile(`^([a-z_][a-z0-9_]*\.)?[a-z_][a-z0-9_]*$`)

// MaxArguments bounds how many positional arguments a call may carry.
const MaxArguments = 20

// ValidName reports whether name is a safe function identifier.
func ValidName(name string) bool {
	return identifierPattern.MatchString(name)
}

// Call describes a single database function invocation.
type Call struct {
	Name string `json:"name"`
	Args []any  `json:"args"`
}

// Result carries the row set a function produced.
type Result struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}
