package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// LogRepository appends and reads habit completion logs.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Create(ctx context.Context, entry *model.Log) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	return nil
}

// MostRecentFor returns the log with the greatest log_date for the habit,
// or nil when the habit has never been logged. Ties are not broken.
func (r *LogRepository) MostRecentFor(ctx context.Context, habitID uint) (*model.Log, error) {
	var entry model.Log
	err := r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("log_date DESC").
		Limit(1).
		Take(&entry).Error
	switch {
	case err == nil:
		return &entry, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find latest log: %w", err)
	}
}

// ListFor returns every log of the habit, newest first.
func (r *LogRepository) ListFor(ctx context.Context, habitID uint) ([]model.Log, error) {
	logs := []model.Log{}
	if err := r.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("log_date DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}
