package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// HabitRepository handles CRUD for habits.
type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// ListAll returns every habit in insertion order.
func (r *HabitRepository) ListAll(ctx context.Context) ([]model.Habit, error) {
	habits := []model.Habit{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	return habits, nil
}

func (r *HabitRepository) Create(ctx context.Context, habit *model.Habit) error {
	if err := r.db.WithContext(ctx).Create(habit).Error; err != nil {
		return fmt.Errorf("create habit: %w", err)
	}
	return nil
}

// FindByID returns gorm.ErrRecordNotFound when no habit has that id.
func (r *HabitRepository) FindByID(ctx context.Context, id uint) (*model.Habit, error) {
	var habit model.Habit
	if err := r.db.WithContext(ctx).First(&habit, id).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

// Update sets the given columns on the habit with that id. A missing id
// affects zero rows and is not an error.
func (r *HabitRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Habit{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return 0, fmt.Errorf("update habit: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the habit row only. Its logs are left in place.
func (r *HabitRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&model.Habit{}, id).Error; err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}
