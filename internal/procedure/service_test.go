// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package procedure_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/procedure"
)

type fakeRunner struct {
	lastName string
	lastArgs []any
	result   *procedure.Result
}

func (f *fakeRunner) Run(_ context.Context, name string, args []any) (*procedure.Result, error) {
	f.lastName = name
	f.lastArgs = args
	return f.result, nil
}

func newService(t *testing.T) (*procedure.Service, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{result: &procedure.Result{Columns: []string{"total"}, Rows: []map[string]any{{"total": 3}}}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return procedure.NewService(runner, logger), runner
}

func TestValidName(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"fn_tour_stats", true},
		{"tour.fn_recalculate_prices", true},
		{"_internal", true},
		{"Fn_Bad_Case", false},
		{"fn_stats; DROP TABLE tour.tourdetail", false},
		{"fn stats", false},
		{"tour.blog.fn", false},
		{"1fn", false},
		{"", false},
	}

	for _, testCase := range cases {
		assert.Equal(t, testCase.valid, procedure.ValidName(testCase.name), testCase.name)
	}
}

func TestExecute_RejectsInvalidName(t *testing.T) {
	service, runner := newService(t)

	_, err := service.Execute(context.Background(), procedure.Call{Name: "fn; DROP"})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Empty(t, runner.lastName)
}

func TestExecute_RejectsTooManyArguments(t *testing.T) {
	service, _ := newService(t)

	args := make([]any, procedure.MaxArguments+1)
	_, err := service.Execute(context.Background(), procedure.Call{Name: "fn_tour_stats", Args: args})

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

func TestExecute_PassesCallThrough(t *testing.T) {
	service, runner := newService(t)

	result, err := service.Execute(context.Background(), procedure.Call{
		Name: "tour.fn_recalculate_prices",
		Args: []any{2026, "EUR"},
	})
	require.NoError(t, err)

	assert.Equal(t, "tour.fn_recalculate_prices", runner.lastName)
	assert.Equal(t, []any{2026, "EUR"}, runner.lastArgs)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, 3, result.Rows[0]["total"])
}
