package services

import (
	"context"
	"fmt"

	"inovatrust/domain/entities"
	"inovatrust/domain/interfaces"
)

type settingsService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewSettingsService creates the platform settings service
func NewSettingsService(uowFactory interfaces.UnitOfWorkFactory) interfaces.SettingsService {
	return &settingsService{uowFactory: uowFactory}
}

// List returns every platform setting
func (s *settingsService) List(ctx context.Context) ([]*entities.PlatformSetting, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settings, err := uow.PlatformSettingRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, uow.Commit()
}

// Set upserts a setting value
func (s *settingsService) Set(ctx context.Context, key, value string) (*entities.PlatformSetting, error) {
	if key == "" {
		return nil, fmt.Errorf("setting key is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	setting, err := uow.PlatformSettingRepository().Set(ctx, key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return setting, uow.Commit()
}
