package folder

import (
	"context"
	"log/slog"
	"strings"

	"github.com/minhngo/travia/internal/platform/apperr"
	"github.com/minhngo/travia/internal/platform/validate"
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

func (service *Service) List(context context.Context) ([]*Folder, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id int) (*Folder, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Create(context context.Context, folder *Folder) error {
	folder.Name = strings.TrimSpace(folder.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, folder.Name).MaxLen(FieldName, folder.Name, 150)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, folder); err != nil {
		return err
	}

	service.logger.Info("folder_created", slog.Int("folder_id", folder.ID))
	return nil
}

func (service *Service) Update(context context.Context, id int, folder *Folder) error {
	folder.ID = id
	folder.Name = strings.TrimSpace(folder.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, folder.Name).MaxLen(FieldName, folder.Name, 150)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(context, folder); err != nil {
		return err
	}

	service.logger.Info("folder_updated", slog.Int("folder_id", id))
	return nil
}

// Delete removes a folder. Folders holding files cannot be deleted.
func (service *Service) Delete(context context.Context, id int) error {
	if _, err := service.repo.Get(context, id); err != nil {
		return err
	}

	count, err := service.repo.CountFiles(context, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("Folder is not empty")
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("folder_deleted", slog.Int("folder_id", id))
	return nil
}
