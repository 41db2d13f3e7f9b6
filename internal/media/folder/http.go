package folder

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
	// Editor Only: the media library is a CMS surface.
	router.Use(middleware.RequireRole(sec.RoleEditor))

	router.Get("/", handler.listFolders)
	router.Get("/{id}", handler.getFolder)
	router.Post("/", handler.createFolder)
	router.Put("/{id}", handler.updateFolder)
	router.Delete("/{id}", handler.deleteFolder)
}

func pathID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Invalid folder ID")
	}
	return id, nil
}

func (handler *Handler) listFolders(writer http.ResponseWriter, request *http.Request) {
	folders, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, folders)
}

func (handler *Handler) getFolder(writer http.ResponseWriter, request *http.Request) {
	folderID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	folder, err := handler.service.Get(request.Context(), folderID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, folder)
}

func (handler *Handler) createFolder(writer http.ResponseWriter, request *http.Request) {
	var input Folder
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

func (handler *Handler) updateFolder(writer http.ResponseWriter, request *http.Request) {
	folderID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Folder
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), folderID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteFolder(writer http.ResponseWriter, request *http.Request) {
	folderID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), folderID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
