package library

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
	// Galleries are publicly readable; mutation is a CMS surface.
	router.Get("/{entityType}/{entityID}", handler.listImages)

	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.addImage)
		editorRoute.Post("/batch", handler.addImages)
		editorRoute.Delete("/{id}", handler.deleteImage)
		editorRoute.Delete("/batch", handler.deleteImages)
		editorRoute.Delete("/{entityType}/{entityID}", handler.clearGallery)
	})
}

func entityParams(request *http.Request) (string, int, error) {
	entityType := requestutil.ID(request, "entityType")
	entityID, err := strconv.Atoi(requestutil.ID(request, "entityID"))
	if err != nil {
		return "", 0, apperr.ValidationError("Invalid entity ID")
	}
	return entityType, entityID, nil
}

func (handler *Handler) listImages(writer http.ResponseWriter, request *http.Request) {
	entityType, entityID, err := entityParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	images, err := handler.service.ListByEntity(request.Context(), entityType, entityID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, images)
}

func (handler *Handler) addImage(writer http.ResponseWriter, request *http.Request) {
	var input Image
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Add(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) addImages(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Images []*Image `json:"images"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.AddBatch(request.Context(), input.Images); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input.Images)
}

func (handler *Handler) deleteImage(writer http.ResponseWriter, request *http.Request) {
	imageID, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid image ID"))
		return
	}

	if err := handler.service.Delete(request.Context(), imageID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) deleteImages(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		IDs []int `json:"ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteBatch(request.Context(), input.IDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"deleted": deleted})
}

func (handler *Handler) clearGallery(writer http.ResponseWriter, request *http.Request) {
	entityType, entityID, err := entityParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteByEntity(request.Context(), entityType, entityID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"deleted": deleted})
}
