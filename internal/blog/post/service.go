package post

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhngo/travia/internal/blog/category"
	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/validate"
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

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// ListByCategory returns posts attached to the category or any of its direct
// children, matching how category landing pages aggregate content.
func (service *Service) ListByCategory(context context.Context, categoryID int, published *bool, limit, offset int) ([]*Post, int, error) {
	if _, err := service.categories.Get(context, categoryID); err != nil {
		return nil, 0, err
	}

	ids := []int{categoryID}
	children, err := service.categories.ListChildren(context, categoryID)
	if err != nil {
		return nil, 0, err
	}
	for _, child := range children {
		ids = append(ids, child.ID)
	}

	return service.repo.List(context, Filter{Published: published, CategoryIDs: ids}, limit, offset)
}

func (service *Service) Get(context context.Context, id int) (*Post, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Create(context context.Context, post *Post) error {
	if err := service.prepare(context, post, 0); err != nil {
		return err
	}

	if err := service.repo.Create(context, post); err != nil {
		return err
	}

	service.logger.Info("post_created",
		slog.Int("post_id", post.ID),
		slog.String("slug", post.Slug),
	)
	return nil
}

func (service *Service) Update(context context.Context, id int, post *Post) error {
	post.ID = id

	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	if err := service.prepare(context, post, id); err != nil {
		return err
	}

	if err := service.repo.Update(context, post); err != nil {
		return err
	}

	service.logger.Info("post_updated", slog.Int("post_id", id))
	return nil
}

func (service *Service) Delete(context context.Context, id int) error {
	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("post_deleted", slog.Int("post_id", id))
	return nil
}

// # Internals

func (service *Service) prepare(context context.Context, post *Post, excludeID int) error {
	post.Title = strings.TrimSpace(post.Title)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, post.Title).MaxLen(FieldTitle, post.Title, 300)

	if post.Slug == "" {
		post.Slug = slug.From(post.Title)
	} else {
		post.Slug = tree.NormalizeSlug(post.Slug)
	}
	validator.Slug(FieldSlug, post.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	if post.MainCategoryID != nil {
		if _, err := service.categories.Get(context, *post.MainCategoryID); err != nil {
			return apperr.NotFound("Main category")
		}
	}
	for _, categoryID := range post.CategoryIDs {
		if _, err := service.categories.Get(context, categoryID); err != nil {
			return apperr.NotFound("Category")
		}
	}

	taken, err := service.repo.SlugExists(context, post.Slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("A post with this slug already exists")
	}

	return nil
}
