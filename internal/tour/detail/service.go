package detail

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/validate"
	"github.com/minhngo/travia/internal/tour/category"
	"github.com/minhngo/travia/internal/tree"
	"github.com/minhngo/travia/pkg/slug"
)

type Service struct {
	repo       Repository
	categories category.Repository
	logger     *slog.Logger
}

func NewService(repo Repository, categories category.Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		logger:     logger,
	}
}

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Tour, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// ListByCategory narrows the administrative listing to a category and its
// direct children.
func (service *Service) ListByCategory(context context.Context, categoryID int, filter Filter, limit, offset int) ([]*Tour, int, error) {
	if _, err := service.categories.Get(context, categoryID); err != nil {
		return nil, 0, err
	}

	filter.CategoryIDs = []int{categoryID}
	children, err := service.categories.ListChildren(context, categoryID)
	if err != nil {
		return nil, 0, err
	}
	for _, child := range children {
		filter.CategoryIDs = append(filter.CategoryIDs, child.ID)
	}

	return service.repo.List(context, filter, limit, offset)
}

// ListPublic serves the public catalog page of a category slug.
func (service *Service) ListPublic(context context.Context, categorySlug string, filter PublicFilter, limit, offset int) ([]*Tour, int, error) {
	switch filter.Sort {
	case "", "newest", "price_asc", "price_desc":
	default:
		return nil, 0, apperr.ValidationError("Unsupported sort order")
	}
	return service.repo.ListPublic(context, tree.NormalizeSlug(categorySlug), filter, limit, offset)
}

func (service *Service) Get(context context.Context, id int) (*Tour, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Create(context context.Context, tour *Tour) error {
	if err := service.prepare(context, tour, 0); err != nil {
		return err
	}

	if err := service.repo.Create(context, tour); err != nil {
		return err
	}

	service.logger.Info("tour_created",
		slog.Int("tour_id", tour.ID),
		slog.String("code", tour.Code),
	)
	return nil
}

func (service *Service) Update(context context.Context, id int, tour *Tour) error {
	tour.ID = id

	current, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}
	// The code is assigned at creation and never changes.
	tour.Code = current.Code

	if err := service.prepare(context, tour, id); err != nil {
		return err
	}

	if err := service.repo.Update(context, tour); err != nil {
		return err
	}

	service.logger.Info("tour_updated", slog.Int("tour_id", id))
	return nil
}

// Delete hard-removes a tour with its junctions and departure dates.
func (service *Service) Delete(context context.Context, id int) error {
	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("tour_deleted", slog.Int("tour_id", id))
	return nil
}

// SoftDelete hides a tour from every listing without touching its relations.
func (service *Service) SoftDelete(context context.Context, id int) error {
	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Warn("tour_soft_deleted", slog.Int("tour_id", id))
	return nil
}

func (service *Service) ToggleHot(context context.Context, id int) (bool, error) {
	isHot, err := service.repo.ToggleHot(context, id)
	if err != nil {
		return false, err
	}

	service.logger.Info("tour_hot_toggled", slog.Int("tour_id", id), slog.Bool("is_hot", isHot))
	return isHot, nil
}

func (service *Service) ToggleHide(context context.Context, id int) (bool, error) {
	isHide, err := service.repo.ToggleHide(context, id)
	if err != nil {
		return false, err
	}

	service.logger.Info("tour_hide_toggled", slog.Int("tour_id", id), slog.Bool("is_hide", isHide))
	return isHide, nil
}

// # Departure Dates

func (service *Service) ListDates(context context.Context, tourID int) ([]time.Time, error) {
	if _, err := service.repo.Get(context, tourID); err != nil {
		return nil, err
	}
	return service.repo.ListDates(context, tourID)
}

// AddDates appends departure dates to a tour.
func (service *Service) AddDates(context context.Context, tourID int, dates []time.Time) error {
	if len(dates) == 0 {
		return apperr.ValidationError("At least one departure date is required")
	}
	if _, err := service.repo.Get(context, tourID); err != nil {
		return err
	}

	if err := service.repo.AddDates(context, tourID, dates); err != nil {
		return err
	}

	service.logger.Info("tour_dates_added", slog.Int("tour_id", tourID), slog.Int("count", len(dates)))
	return nil
}

// DeleteDates removes every departure date of a tour.
func (service *Service) DeleteDates(context context.Context, tourID int) error {
	if _, err := service.repo.Get(context, tourID); err != nil {
		return err
	}

	if err := service.repo.DeleteDates(context, tourID); err != nil {
		return err
	}

	service.logger.Info("tour_dates_cleared", slog.Int("tour_id", tourID))
	return nil
}

// # Internals

func (service *Service) prepare(context context.Context, tour *Tour, excludeID int) error {
	tour.Name = strings.TrimSpace(tour.Name)
	if tour.Avatar == "" {
		tour.Avatar = DefaultAvatar
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, tour.Name).MaxLen(FieldName, tour.Name, 300)
	validator.Custom(FieldPrice, tour.Price < 0, "Price cannot be negative")

	if tour.Slug == "" {
		tour.Slug = slug.From(tour.Name)
	} else {
		tour.Slug = tree.NormalizeSlug(tour.Slug)
	}
	validator.Slug(FieldSlug, tour.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if tour.MainCategoryID != nil {
		if _, err := service.categories.Get(context, *tour.MainCategoryID); err != nil {
			return apperr.NotFound("Main tour category")
		}
	}
	for _, categoryID := range tour.CategoryIDs {
		if _, err := service.categories.Get(context, categoryID); err != nil {
			return apperr.NotFound("Tour category")
		}
	}

	taken, err := service.repo.SlugExists(context, tour.Slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("A tour with this slug already exists")
	}

	if tour.Code != "" {
		duplicated, err := service.repo.CodeExists(context, tour.Code, excludeID)
		if err != nil {
			return err
		}
		if duplicated {
			return apperr.Conflict("A tour with this code already exists")
		}
	}

	return nil
}
