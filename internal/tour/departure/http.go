package departure

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/middleware"
	requestutil "github.com/minhngo/travia/internal/platform/request"
	"github.com/minhngo/travia/internal/platform/respond"
	"github.com/minhngo/travia/internal/platform/sec"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listDepartures)
	router.Get("/{id}", handler.getDeparture)

	// Editor Only
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createDeparture)
		editorRoute.Put("/{id}", handler.updateDeparture)
		editorRoute.Delete("/{id}", handler.deleteDeparture)
	})
}

func pathID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Invalid departure point ID")
	}
	return id, nil
}

func (handler *Handler) listDepartures(writer http.ResponseWriter, request *http.Request) {
	departures, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, departures)
}

func (handler *Handler) getDeparture(writer http.ResponseWriter, request *http.Request) {
	departureID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	departure, err := handler.service.Get(request.Context(), departureID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, departure)
}

func (handler *Handler) createDeparture(writer http.ResponseWriter, request *http.Request) {
	var input Departure
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateDeparture(writer http.ResponseWriter, request *http.Request) {
	departureID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Departure
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), departureID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteDeparture(writer http.ResponseWriter, request *http.Request) {
	departureID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), departureID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
