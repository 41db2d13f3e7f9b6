package menu

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/validate"
	"github.com/minhngo/travia/internal/tree"
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

// ListTree returns the full navigation for the CMS, nested, hidden entries
// included.
func (service *Service) ListTree(context context.Context) ([]*Menu, error) {
	all, err := service.repo.ListActive(context)
	if err != nil {
		return nil, err
	}
	return assembleTree(all), nil
}

// ListVisible returns the public navigation: hidden and deleted entries are
// excluded before nesting, so children of a hidden entry disappear with it.
func (service *Service) ListVisible(context context.Context) ([]*Menu, error) {
	all, err := service.repo.ListVisible(context)
	if err != nil {
		return nil, err
	}
	return assembleTree(all), nil
}

func (service *Service) Get(context context.Context, id int) (*Menu, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Create(context context.Context, menu *Menu) error {
	if err := service.prepare(context, menu); err != nil {
		return err
	}

	if err := service.repo.Create(context, menu); err != nil {
		return err
	}

	service.logger.Info("menu_created", slog.Int("menu_id", menu.ID))
	return nil
}

func (service *Service) Update(context context.Context, id int, menu *Menu) error {
	menu.ID = id

	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	if err := service.prepare(context, menu); err != nil {
		return err
	}

	if menu.ParentID != nil {
		if *menu.ParentID == id {
			return apperr.ValidationError("A menu cannot be its own parent")
		}
		descendant, err := tree.IsDescendantOf(context, service.repo.Get, *menu.ParentID, id)
		if err != nil {
			return err
		}
		if descendant {
			return apperr.Conflict("Cannot select a descendant menu as parent")
		}
	}

	if err := service.repo.Update(context, menu); err != nil {
		return err
	}

	service.logger.Info("menu_updated", slog.Int("menu_id", id))
	return nil
}

// Delete soft-deletes a menu entry, promoting its children to the deleted
// entry's parent.
func (service *Service) Delete(context context.Context, id int) error {
	menu, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.SoftDelete(context, id, menu.ParentID); err != nil {
		return err
	}

	service.logger.Warn("menu_deleted", slog.Int("menu_id", id))
	return nil
}

// Restore brings a soft-deleted entry back. Children promoted at delete time
// keep their new parent.
func (service *Service) Restore(context context.Context, id int) error {
	if err := service.repo.Restore(context, id); err != nil {
		return err
	}

	service.logger.Info("menu_restored", slog.Int("menu_id", id))
	return nil
}

func (service *Service) prepare(context context.Context, menu *Menu) error {
	menu.Name = strings.TrimSpace(menu.Name)
	menu.URL = strings.TrimSpace(menu.URL)

	validator := &validate.Validator{}
	validator.
		Required(FieldName, menu.Name).
		MaxLen(FieldName, menu.Name, 150).
		Required(FieldURL, menu.URL).
		URL(FieldURL, menu.URL).
		Custom(FieldIndexNumber, menu.IndexNumber < 0, "must not be negative")
	if err := validator.Err(); err != nil {
		return err
	}

	menu.ParentID = tree.ResolveParent(menu.ParentID)
	if menu.ParentID != nil {
		if _, err := service.repo.Get(context, *menu.ParentID); err != nil {
			return apperr.NotFound("Parent menu")
		}
	}

	return nil
}

// assembleTree nests a flat menu list under its parents, ordered as listed.
func assembleTree(all []*Menu) []*Menu {
	byID := make(map[int]*Menu, len(all))
	for _, m := range all {
		byID[m.ID] = m
	}

	roots := []*Menu{}
	for _, m := range all {
		if m.ParentID == nil {
			roots = append(roots, m)
			continue
		}
		parent, ok := byID[*m.ParentID]
		if !ok {
			roots = append(roots, m)
			continue
		}
		parent.Children = append(parent.Children, m)
	}

	return roots
}
