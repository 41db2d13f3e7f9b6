package detail

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/middleware"
	requestutil "github.com/minhngo/travia/internal/platform/request"
	"github.com/minhngo/travia/internal/platform/respond"
	"github.com/minhngo/travia/internal/platform/sec"
	"github.com/minhngo/travia/pkg/pagination"
	"github.com/minhngo/travia/pkg/pointer"
)

// dateLayout is the wire format for departure dates.
const dateLayout = "2006-01-02"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listTours)
	router.Get("/{id}", handler.getTour)
	router.Get("/{id}/dates", handler.listDates)
	router.Get("/filter/{categorySlug}", handler.listPublic)

	// Editor Only
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createTour)
		editorRoute.Put("/{id}", handler.updateTour)
		editorRoute.Post("/{id}/soft-delete", handler.softDeleteTour)
		editorRoute.Post("/{id}/toggle-hot", handler.toggleHot)
		editorRoute.Post("/{id}/toggle-hide", handler.toggleHide)
		editorRoute.Post("/{id}/dates", handler.addDates)
		editorRoute.Delete("/{id}/dates", handler.deleteDates)

		// Admin strict only
		editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteTour)
	})
}

func pathID(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.ID(request, "id"))
	if err != nil {
		return 0, apperr.ValidationError("Invalid tour ID")
	}
	return id, nil
}

func boolQuery(request *http.Request, key string) *bool {
	switch request.URL.Query().Get(key) {
	case "true":
		return pointer.To(true)
	case "false":
		return pointer.To(false)
	default:
		return nil
	}
}

func intQuery(request *http.Request, key string) *int {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func int64Query(request *http.Request, key string) *int64 {
	raw := request.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (handler *Handler) listTours(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := Filter{
		IsHot:  boolQuery(request, "is_hot"),
		IsHide: boolQuery(request, "is_hide"),
	}

	if categoryID := intQuery(request, "category_id"); categoryID != nil {
		tours, total, err := handler.service.ListByCategory(request.Context(), *categoryID, filter, paginationParams.Limit, paginationParams.Offset())
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Paginated(writer, tours, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
		return
	}

	tours, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, tours, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := PublicFilter{
		DestinationID: intQuery(request, "destination_id"),
		DepartureID:   intQuery(request, "departure_id"),
		MinPrice:      int64Query(request, "min_price"),
		MaxPrice:      int64Query(request, "max_price"),
		Month:         intQuery(request, "month"),
		Sort:          request.URL.Query().Get("sort"),
	}

	tours, total, err := handler.service.ListPublic(request.Context(), requestutil.Param(request, "categorySlug"), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, tours, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getTour(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tour, err := handler.service.Get(request.Context(), tourID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tour)
}

func (handler *Handler) createTour(writer http.ResponseWriter, request *http.Request) {
	var input Tour
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if claims := requestutil.Claims(request); claims != nil {
		input.CreatorName = &claims.Username
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateTour(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Tour
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), tourID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteTour(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), tourID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) softDeleteTour(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SoftDelete(request.Context(), tourID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) toggleHot(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	isHot, err := handler.service.ToggleHot(request.Context(), tourID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"is_hot": isHot})
}

func (handler *Handler) toggleHide(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	isHide, err := handler.service.ToggleHide(request.Context(), tourID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"is_hide": isHide})
}

// # Departure Dates

type datesInput struct {
	Dates []string `json:"dates"`
}

func (handler *Handler) listDates(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	dates, err := handler.service.ListDates(request.Context(), tourID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	formatted := make([]string, 0, len(dates))
	for _, date := range dates {
		formatted = append(formatted, date.Format(dateLayout))
	}
	respond.OK(writer, formatted)
}

func (handler *Handler) addDates(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input datesInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dates := make([]time.Time, 0, len(input.Dates))
	for _, raw := range input.Dates {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			respond.Error(writer, request, apperr.ValidationError("Dates must use the YYYY-MM-DD format"))
			return
		}
		dates = append(dates, date)
	}

	if err := handler.service.AddDates(request.Context(), tourID, dates); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteDates(writer http.ResponseWriter, request *http.Request) {
	tourID, err := pathID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDates(request.Context(), tourID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
