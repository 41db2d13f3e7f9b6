package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/validate"
	"github.com/minhngo/travia/internal/tree"
	"github.com/minhngo/travia/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListTree returns the active category hierarchy with children nested and
// parent names resolved. Soft-deleted nodes never appear, at any level.
func (service *Service) ListTree(context context.Context) ([]*Category, error) {
	all, err := service.repo.ListActive(context)
	if err != nil {
		return nil, err
	}
	return assembleTree(all), nil
}

// ListDeleted returns the soft-deleted categories, flat.
func (service *Service) ListDeleted(context context.Context) ([]*Category, error) {
	return service.repo.ListDeleted(context)
}

func (service *Service) Get(context context.Context, id int) (*Category, error) {
	category, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	if category.ParentID != nil {
		if parent, err := service.repo.Get(context, *category.ParentID); err == nil {
			category.ParentName = &parent.Name
		}
	}
	return category, nil
}

func (service *Service) Create(context context.Context, category *Category) error {
	if err := service.prepare(context, category, 0); err != nil {
		return err
	}

	if err := service.repo.Create(context, category); err != nil {
		return err
	}

	service.logger.Info("tour_category_created",
		slog.Int("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return nil
}

func (service *Service) Update(context context.Context, id int, category *Category) error {
	category.ID = id

	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	if resolved := tree.ResolveParent(category.ParentID); resolved != nil && *resolved == id {
		return apperr.ValidationError("A category cannot be its own parent")
	}

	if err := service.prepare(context, category, id); err != nil {
		return err
	}

	// Cycle guard: the new parent must not live inside the node's subtree.
	if category.ParentID != nil {
		descendant, err := tree.IsDescendantOf(context, service.repo.Get, *category.ParentID, id)
		if err != nil {
			return err
		}
		if descendant {
			return apperr.Conflict("Cannot select a descendant category as parent")
		}
	}

	if err := service.repo.Update(context, category); err != nil {
		return err
	}

	service.logger.Info("tour_category_updated", slog.Int("category_id", id))
	return nil
}

/*
SoftDelete flags a category as deleted and detaches it from the catalog:
children move up to the deleted node's parent, tours lose it as main
category, and its tour mappings are removed. All in one transaction.
*/
func (service *Service) SoftDelete(context context.Context, id int) error {
	category, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.SoftDeleteAndDetach(context, id, category.ParentID); err != nil {
		return err
	}

	service.logger.Warn("tour_category_soft_deleted", slog.Int("category_id", id))
	return nil
}

// Restore clears the deletion flag of a soft-deleted category. Tour
// references removed during soft delete stay removed.
func (service *Service) Restore(context context.Context, id int) error {
	category, err := service.repo.GetAny(context, id)
	if err != nil {
		return err
	}
	if !category.IsDeleted {
		return apperr.NotFound("Deleted category")
	}

	if err := service.repo.Restore(context, id); err != nil {
		return err
	}

	service.logger.Info("tour_category_restored", slog.Int("category_id", id))
	return nil
}

// PermanentDelete removes a category row for good. It is refused while any
// tour still references the node.
func (service *Service) PermanentDelete(context context.Context, id int) error {
	category, err := service.repo.GetAny(context, id)
	if err != nil {
		return err
	}

	refs, err := service.repo.CountTourRefs(context, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return apperr.Conflict("Category is still referenced by tours and cannot be permanently deleted")
	}

	if err := service.repo.PermanentDeleteAndReparent(context, id, category.ParentID); err != nil {
		return err
	}

	service.logger.Warn("tour_category_permanently_deleted", slog.Int("category_id", id))
	return nil
}

// Breadcrumb returns the root-first ancestor trail of an active category.
func (service *Service) Breadcrumb(context context.Context, id int) ([]tree.Crumb, error) {
	return tree.Breadcrumb(context, service.repo.Get, id, func(c *Category) tree.Crumb {
		return tree.Crumb{ID: c.ID, Name: c.Name, Slug: c.Slug}
	})
}

// # Internals

func (service *Service) prepare(context context.Context, category *Category, excludeID int) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Topic != nil {
		trimmed := strings.TrimSpace(*category.Topic)
		category.Topic = &trimmed
	}
	if category.Avatar == "" {
		category.Avatar = DefaultAvatar
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 250)

	if category.Slug == "" {
		category.Slug = slug.From(category.Name)
	} else {
		category.Slug = tree.NormalizeSlug(category.Slug)
	}
	validator.Slug(FieldSlug, category.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	category.ParentID = tree.ResolveParent(category.ParentID)
	if category.ParentID != nil {
		if _, err := service.repo.Get(context, *category.ParentID); err != nil {
			return apperr.NotFound("Parent category")
		}
	}

	taken, err := service.repo.SlugExists(context, category.Slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("A category with this slug already exists")
	}

	return nil
}

func assembleTree(all []*Category) []*Category {
	byID := make(map[int]*Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	roots := []*Category{}
	for _, c := range all {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok {
			// Parent is soft-deleted or missing: promote to root for display.
			roots = append(roots, c)
			continue
		}
		parent.Children = append(parent.Children, c)
		c.ParentName = &parent.Name
	}

	return roots
}
