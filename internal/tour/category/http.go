package category

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
	router.Get("/", handler.listCategories)
	router.Get("/{id}", handler.getCategory)
	router.Get("/{id}/breadcrumb", handler.getBreadcrumb)

	// Editor Only
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Get("/deleted", handler.listDeleted)
		editorRoute.Post("/", handler.createCategory)
		editorRoute.Put("/{id}", handler.updateCategory)
		editorRoute.Delete("/{id}", handler.softDeleteCategory)
		editorRoute.Post("/{id}/restore", handler.restoreCategory)

		// Admin strict only
		editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}/permanent", handler.permanentDeleteCategory)
	})
}

func pathID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Invalid category ID")
	}
	return id, nil
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListTree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) listDeleted(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListDeleted(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.Get(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) getBreadcrumb(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	crumbs, err := handler.service.Breadcrumb(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, crumbs)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
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

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.ID != 0 && input.ID != categoryID {
		respond.Error(writer, request, apperr.ValidationError("Body id does not match the path id"))
		return
	}

	if err := handler.service.Update(request.Context(), categoryID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) softDeleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SoftDelete(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restoreCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Restore(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]int{"id": categoryID})
}

func (handler *Handler) permanentDeleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.PermanentDelete(request.Context(), categoryID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
