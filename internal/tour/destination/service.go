package destination

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

// ListTree returns the destination hierarchy, roots with nested children.
func (service *Service) ListTree(context context.Context) ([]*Destination, error) {
	all, err := service.repo.ListAll(context)
	if err != nil {
		return nil, err
	}
	return assembleTree(all), nil
}

func (service *Service) Get(context context.Context, id int) (*Destination, error) {
	destination, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}

	if destination.ParentID != nil {
		if parent, err := service.repo.Get(context, *destination.ParentID); err == nil {
			destination.ParentName = &parent.Name
		}
	}
	return destination, nil
}

func (service *Service) Create(context context.Context, destination *Destination) error {
	if err := service.prepare(context, destination, 0); err != nil {
		return err
	}

	if err := service.repo.Create(context, destination); err != nil {
		return err
	}

	service.logger.Info("destination_created",
		slog.Int("destination_id", destination.ID),
		slog.String("slug", destination.Slug),
	)
	return nil
}

func (service *Service) Update(context context.Context, id int, destination *Destination) error {
	destination.ID = id

	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	if resolved := tree.ResolveParent(destination.ParentID); resolved != nil && *resolved == id {
		return apperr.ValidationError("A destination cannot be its own parent")
	}

	if err := service.prepare(context, destination, id); err != nil {
		return err
	}

	if destination.ParentID != nil {
		descendant, err := tree.IsDescendantOf(context, service.repo.Get, *destination.ParentID, id)
		if err != nil {
			return err
		}
		if descendant {
			return apperr.Conflict("Cannot select a descendant destination as parent")
		}
	}

	if err := service.repo.Update(context, destination); err != nil {
		return err
	}

	service.logger.Info("destination_updated", slog.Int("destination_id", id))
	return nil
}

// Delete removes a destination. Children are promoted to the deleted node's
// parent and tour links are detached, atomically.
func (service *Service) Delete(context context.Context, id int) error {
	destination, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteAndReparent(context, id, destination.ParentID); err != nil {
		return err
	}

	service.logger.Warn("destination_deleted", slog.Int("destination_id", id))
	return nil
}

// Breadcrumb returns the root-first ancestor trail of a destination.
func (service *Service) Breadcrumb(context context.Context, id int) ([]tree.Crumb, error) {
	return tree.Breadcrumb(context, service.repo.Get, id, func(d *Destination) tree.Crumb {
		return tree.Crumb{ID: d.ID, Name: d.Name, Slug: d.Slug}
	})
}

// # Internals

func (service *Service) prepare(context context.Context, destination *Destination, excludeID int) error {
	destination.Name = strings.TrimSpace(destination.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, destination.Name).MaxLen(FieldName, destination.Name, 250)

	if destination.Slug == "" {
		destination.Slug = slug.From(destination.Name)
	} else {
		destination.Slug = tree.NormalizeSlug(destination.Slug)
	}
	validator.Slug(FieldSlug, destination.Slug)

	if err := validator.Err(); err != nil {
		return err
	}

	destination.ParentID = tree.ResolveParent(destination.ParentID)
	if destination.ParentID != nil {
		if _, err := service.repo.Get(context, *destination.ParentID); err != nil {
			return apperr.NotFound("Parent destination")
		}
	}

	taken, err := service.repo.SlugExists(context, destination.Slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("A destination with this slug already exists")
	}

	return nil
}

func assembleTree(all []*Destination) []*Destination {
	byID := make(map[int]*Destination, len(all))
	for _, d := range all {
		byID[d.ID] = d
	}

	roots := []*Destination{}
	for _, d := range all {
		if d.ParentID == nil {
			roots = append(roots, d)
			continue
		}
		parent, ok := byID[*d.ParentID]
		if !ok {
			roots = append(roots, d)
			continue
		}
		parent.Children = append(parent.Children, d)
		d.ParentName = &parent.Name
	}

	return roots
}
