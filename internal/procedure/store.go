// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package procedure

import "context"

// Runner executes a validated database function call.
type Runner interface {
	// Run invokes the named function with positional arguments and returns
	// its row set. The name must already be validated by the caller.
	Run(context context.Context, name string, args []any) (*Result, error)
}
