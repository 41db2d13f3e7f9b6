// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package procedure

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhngo/travia/internal/platform/apperr"
)

type Service struct {
	runner Runner
	logger *slog.Logger
}

func NewService(runner Runner, logger *slog.Logger) *Service {
	return &Service{
		runner: runner,
		logger: logger,
	}
}

// Execute validates and runs a database function call.
func (service *Service) Execute(context context.Context, call Call) (*Result, error) {
	call.Name = strings.TrimSpace(call.Name)
	if call.Name == "" {
		return nil, apperr.ValidationError("Procedure name is required")
	}
	if !ValidName(call.Name) {
		return nil, apperr.ValidationError("Invalid procedure name")
	}
	if len(call.Args) > MaxArguments {
		return nil, apperr.ValidationError("Too many procedure arguments")
	}

	result, err := service.runner.Run(context, call.Name, call.Args)
	if err != nil {
		return nil, err
	}

	service.logger.Info("procedure_executed",
		slog.String("name", call.Name),
		slog.Int("arg_count", len(call.Args)),
		slog.Int("row_count", len(result.Rows)))
	return result, nil
}
