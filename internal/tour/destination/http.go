package destination

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
	router.Get("/", handler.listDestinations)
	router.Get("/{id}", handler.getDestination)
	router.Get("/{id}/breadcrumb", handler.getBreadcrumb)

	// Editor Only
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createDestination)
		editorRoute.Put("/{id}", handler.updateDestination)
		editorRoute.Delete("/{id}", handler.deleteDestination)
	})
}

func pathID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Invalid destination ID")
	}
	return id, nil
}

func (handler *Handler) listDestinations(writer http.ResponseWriter, request *http.Request) {
	destinations, err := handler.service.ListTree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, destinations)
}

func (handler *Handler) getDestination(writer http.ResponseWriter, request *http.Request) {
	destinationID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	destination, err := handler.service.Get(request.Context(), destinationID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, destination)
}

func (handler *Handler) getBreadcrumb(writer http.ResponseWriter, request *http.Request) {
	destinationID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	crumbs, err := handler.service.Breadcrumb(request.Context(), destinationID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, crumbs)
}

func (handler *Handler) createDestination(writer http.ResponseWriter, request *http.Request) {
	var input Destination
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

func (handler *Handler) updateDestination(writer http.ResponseWriter, request *http.Request) {
	destinationID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Destination
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.ID != 0 && input.ID != destinationID {
		respond.Error(writer, request, apperr.ValidationError("Body id does not match the path id"))
		return
	}

	if err := handler.service.Update(request.Context(), destinationID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteDestination(writer http.ResponseWriter, request *http.Request) {
	destinationID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), destinationID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
