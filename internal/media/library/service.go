package library

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

func validateImage(image *Image) error {
	image.EntityType = strings.TrimSpace(image.EntityType)
	image.ImageURL = strings.TrimSpace(image.ImageURL)

	validator := &validate.Validator{}
	validator.
		Required(FieldEntityType, image.EntityType).
		OneOf(FieldEntityType, image.EntityType, EntityTourCategory, EntityTourDetail).
		Required(FieldImageURL, image.ImageURL).
		URL(FieldImageURL, image.ImageURL).
		Custom(FieldEntityID, image.EntityID <= 0, "must be a positive ID")
	return validator.Err()
}

func (service *Service) ListByEntity(context context.Context, entityType string, entityID int) ([]*Image, error) {
	if !ValidEntityType(entityType) {
		return nil, apperr.ValidationError("Unknown entity type")
	}
	return service.repo.ListByEntity(context, entityType, entityID)
}

func (service *Service) Add(context context.Context, image *Image) error {
	if err := validateImage(image); err != nil {
		return err
	}

	if err := service.repo.Create(context, image); err != nil {
		return err
	}

	service.logger.Info("library_image_added",
		slog.Int("image_id", image.ID),
		slog.String("entity_type", image.EntityType),
		slog.Int("entity_id", image.EntityID))
	return nil
}

// AddBatch attaches several images to the same entity at once. Either every
// image is recorded or none are.
func (service *Service) AddBatch(context context.Context, images []*Image) error {
	if len(images) == 0 {
		return apperr.ValidationError("No images to add")
	}
	for _, image := range images {
		if err := validateImage(image); err != nil {
			return err
		}
	}

	if err := service.repo.CreateBatch(context, images); err != nil {
		return err
	}

	service.logger.Info("library_images_added", slog.Int("count", len(images)))
	return nil
}

func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("library_image_deleted", slog.Int("image_id", id))
	return nil
}

func (service *Service) DeleteBatch(context context.Context, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, apperr.ValidationError("No images to delete")
	}

	deleted, err := service.repo.DeleteBatch(context, ids)
	if err != nil {
		return 0, err
	}

	service.logger.Warn("library_images_deleted", slog.Int("count", deleted))
	return deleted, nil
}

// DeleteByEntity clears the whole gallery of an entity.
func (service *Service) DeleteByEntity(context context.Context, entityType string, entityID int) (int, error) {
	if !ValidEntityType(entityType) {
		return 0, apperr.ValidationError("Unknown entity type")
	}

	deleted, err := service.repo.DeleteByEntity(context, entityType, entityID)
	if err != nil {
		return 0, err
	}

	service.logger.Warn("library_gallery_cleared",
		slog.String("entity_type", entityType),
		slog.Int("entity_id", entityID),
		slog.Int("count", deleted))
	return deleted, nil
}
