// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

package procedure

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/minhngo/travia/internal/platform/request"
	"github.com/minhngo/travia/internal/platform/respond"
	"github.com/minhngo/travia/internal/platform/sec"

	"github.com/minhngo/travia/internal/platform/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Admin Only: raw database access is never exposed further down.
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Post("/execute", handler.execute)
}

func (handler *Handler) execute(writer http.ResponseWriter, request *http.Request) {
	var input Call
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Execute(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
