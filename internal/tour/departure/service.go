package departure

import (
	"context"
	"log/slog"
	"strings"

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

func (service *Service) List(context context.Context) ([]*Departure, error) {
	return service.repo.List(context)
}

func (service *Service) Get(context context.Context, id int) (*Departure, error) {
	return service.repo.Get(context, id)
}

func (service *Service) Create(context context.Context, departure *Departure) error {
	departure.Name = strings.TrimSpace(departure.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, departure.Name).MaxLen(FieldName, departure.Name, 250)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Create(context, departure); err != nil {
		return err
	}

	service.logger.Info("departure_created", slog.Int("departure_id", departure.ID))
	return nil
}

func (service *Service) Update(context context.Context, id int, departure *Departure) error {
	departure.ID = id
	departure.Name = strings.TrimSpace(departure.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, departure.Name).MaxLen(FieldName, departure.Name, 250)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Update(context, departure); err != nil {
		return err
	}

	service.logger.Info("departure_updated", slog.Int("departure_id", id))
	return nil
}

func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("departure_deleted", slog.Int("departure_id", id))
	return nil
}
