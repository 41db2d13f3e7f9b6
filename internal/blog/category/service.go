package category

import (
	"context"
	"log/slog"

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

// ListTree returns the active category hierarchy: root categories with their
// descendants nested and parent titles resolved.
func (service *Service) ListTree(context context.Context) ([]*Category, error) {
	all, err := service.repo.ListAll(context)
	if err != nil {
		return nil, err
	}
	return assembleTree(all), nil
}

func (service *Service) Get(context context.Context, id int) (*Category, error) {
	category, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}
	service.resolveParentTitle(context, category)
	return category, nil
}

func (service *Service) Create(context context.Context, category *Category) error {
	if err := service.prepare(context, category, 0); err != nil {
		return err
	}

	if err := service.repo.Create(context, category); err != nil {
		return err
	}

	service.logger.Info("blog_category_created",
		slog.Int("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return nil
}

func (service *Service) Update(context context.Context, id int, category *Category) error {
	category.ID = id

	// The node must currently exist.
	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	if err := service.prepare(context, category, id); err != nil {
		return err
	}

	// Cycle guard: a category cannot move underneath its own subtree.
	if category.ParentID != nil {
		if *category.ParentID == id {
			return apperr.ValidationError("A category cannot be its own parent")
		}
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

	service.logger.Info("blog_category_updated", slog.Int("category_id", id))
	return nil
}

// Delete removes a category. Its children are promoted to the deleted node's
// parent and post references are detached, atomically.
func (service *Service) Delete(context context.Context, id int) error {
	category, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteAndReparent(context, id, category.ParentID); err != nil {
		return err
	}

	service.logger.Warn("blog_category_deleted", slog.Int("category_id", id))
	return nil
}

// Breadcrumb returns the root-first ancestor trail of a category.
func (service *Service) Breadcrumb(context context.Context, id int) ([]tree.Crumb, error) {
	return tree.Breadcrumb(context, service.repo.Get, id, func(c *Category) tree.Crumb {
		return tree.Crumb{ID: c.ID, Name: c.Title, Slug: c.Slug}
	})
}

// # Internals

// prepare validates input, normalizes the slug, resolves the parent sentinel
// and enforces parent existence plus slug uniqueness. excludeID is the node's
// own ID on update (0 on create) so its current slug does not collide with itself.
func (service *Service) prepare(context context.Context, category *Category, excludeID int) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, category.Title).MaxLen(FieldTitle, category.Title, 200)

	if category.Slug == "" {
		category.Slug = slug.From(category.Title)
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

// resolveParentTitle fills ParentTitle for a single category.
func (service *Service) resolveParentTitle(context context.Context, category *Category) {
	if category.ParentID == nil {
		return
	}
	parent, err := service.repo.Get(context, *category.ParentID)
	if err != nil {
		return
	}
	category.ParentTitle = &parent.Title
}

// assembleTree nests a flat category list into root-first trees and resolves
// parent titles in memory.
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
			// Dangling reference: surface the node at root level.
			roots = append(roots, c)
			continue
		}
		parent.Children = append(parent.Children, c)
		c.ParentTitle = &parent.Title
	}

	return roots
}
