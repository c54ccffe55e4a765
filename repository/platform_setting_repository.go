package repository

import (
	"context"
	"fmt"

	"inovatrust/database"
	"inovatrust/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PlatformSettingRepository implements key/value platform settings
type PlatformSettingRepository struct {
	q queryable
}

// NewPlatformSettingRepository creates a new platform setting repository
func NewPlatformSettingRepository(db *database.DB) *PlatformSettingRepository {
	return &PlatformSettingRepository{q: db.Pool}
}

// newPlatformSettingRepositoryWithTx creates a new platform setting repository with a transaction
func newPlatformSettingRepositoryWithTx(tx queryable) *PlatformSettingRepository {
	return &PlatformSettingRepository{q: tx}
}

// Get retrieves a setting by key, nil when absent
func (r *PlatformSettingRepository) Get(ctx context.Context, key string) (*entities.PlatformSetting, error) {
	query := `SELECT id, key, value, updated_at FROM platform_settings WHERE key = $1`

	var s entities.PlatformSetting
	err := r.q.QueryRow(ctx, query, key).Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return &s, nil
}

// Set upserts a setting value
func (r *PlatformSettingRepository) Set(ctx context.Context, key, value string) (*entities.PlatformSetting, error) {
	query := `
		INSERT INTO platform_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING id, key, value, updated_at
	`

	var s entities.PlatformSetting
	err := r.q.QueryRow(ctx, query, key, value).Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return &s, nil
}

// GetAll returns every setting
func (r *PlatformSettingRepository) GetAll(ctx context.Context) ([]*entities.PlatformSetting, error) {
	query := `SELECT id, key, value, updated_at FROM platform_settings ORDER BY key`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	defer rows.Close()

	var settings []*entities.PlatformSetting
	for rows.Next() {
		var s entities.PlatformSetting
		if err := rows.Scan(&s.ID, &s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settings: %w", err)
	}
	return settings, nil
}
