package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/middleware"
	requestutil "github.com/minhngo/travia/internal/platform/request"
	"github.com/minhngo/travia/internal/platform/respond"
	"github.com/minhngo/travia/internal/platform/sec"
	"github.com/minhngo/travia/pkg/pagination"
	"github.com/minhngo/travia/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listPosts)
	router.Get("/{id}", handler.getPost)
	router.Get("/category/{categoryID}", handler.listByCategory)

	// Editor Only
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createPost)
		editorRoute.Put("/{id}", handler.updatePost)
		editorRoute.Delete("/{id}", handler.deletePost)
	})
}

func pathID(request *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, name))
	if err != nil {
		return 0, apperr.ValidationError("Invalid ID")
	}
	return id, nil
}

// publishedFilter parses the optional "published" query parameter.
func publishedFilter(request *http.Request) *bool {
	switch request.URL.Query().Get("published") {
	case "true":
		return pointer.To(true)
	case "false":
		return pointer.To(false)
	default:
		return nil
	}
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{Published: publishedFilter(request)}
	if raw := request.URL.Query().Get("category_id"); raw != "" {
		if categoryID, err := strconv.Atoi(raw); err == nil {
			posts, total, err := handler.service.ListByCategory(request.Context(), categoryID, filter.Published, paginationParams.Limit, paginationParams.Offset())
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
			return
		}
	}

	posts, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) listByCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := pathID(request, "categoryID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	posts, total, err := handler.service.ListByCategory(request.Context(), categoryID, publishedFilter(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	postID, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Get(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	var input Post
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

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	postID, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Post
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), postID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	postID, err := pathID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), postID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
