package menu

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
	router.Get("/", handler.listVisible)

	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Get("/all", handler.listAll)
		editorRoute.Get("/{id}", handler.getMenu)
		editorRoute.Post("/", handler.createMenu)
		editorRoute.Put("/{id}", handler.updateMenu)
		editorRoute.Delete("/{id}", handler.deleteMenu)
		editorRoute.Post("/{id}/restore", handler.restoreMenu)
	})
}

func pathID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Invalid menu ID")
	}
	return id, nil
}

func (handler *Handler) listVisible(writer http.ResponseWriter, request *http.Request) {
	menus, err := handler.service.ListVisible(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, menus)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	menus, err := handler.service.ListTree(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, menus)
}

func (handler *Handler) getMenu(writer http.ResponseWriter, request *http.Request) {
	menuID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	menu, err := handler.service.Get(request.Context(), menuID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, menu)
}

func (handler *Handler) createMenu(writer http.ResponseWriter, request *http.Request) {
	var input Menu
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

func (handler *Handler) updateMenu(writer http.ResponseWriter, request *http.Request) {
	menuID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Menu
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), menuID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteMenu(writer http.ResponseWriter, request *http.Request) {
	menuID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), menuID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restoreMenu(writer http.ResponseWriter, request *http.Request) {
	menuID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Restore(request.Context(), menuID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"status": "restored"})
}
