package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// HabitInput represents data required to create a habit.
type HabitInput struct {
	Name        string
	Description string
	Frequency   string
	Category    string
}

// HabitService wraps habit-related business logic.
type HabitService struct {
	habitRepo *repository.HabitRepository
}

func NewHabitService(habitRepo *repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

func (s *HabitService) ListHabits(ctx context.Context) ([]model.Habit, error) {
	return s.habitRepo.ListAll(ctx)
}

func (s *HabitService) CreateHabit(ctx context.Context, input HabitInput) (*model.Habit, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, NewValidationError("Habit 'name' is required")
	}

	habit := model.Habit{
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
		Category:    input.Category,
	}
	if err := s.habitRepo.Create(ctx, &habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (s *HabitService) GetHabit(ctx context.Context, id uint) (*model.Habit, error) {
	habit, err := s.habitRepo.FindByID(ctx, id)
	switch {
	case err == nil:
		return habit, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

// UpdateHabit applies the recognized keys of fields to the habit. Unknown
// keys are ignored. Updating a habit that does not exist is a no-op.
func (s *HabitService) UpdateHabit(ctx context.Context, id uint, fields map[string]string) error {
	if len(fields) == 0 {
		return NewValidationError("No data provided")
	}

	columns := make(map[string]interface{})
	for _, key := range model.HabitFields {
		if value, ok := fields[key]; ok {
			columns[key] = value
		}
	}
	if len(columns) == 0 {
		return NewValidationError("No valid fields provided for update")
	}

	_, err := s.habitRepo.Update(ctx, id, columns)
	return err
}

// DeleteHabit removes the habit if present. Logs of the habit are kept.
func (s *HabitService) DeleteHabit(ctx context.Context, id uint) error {
	return s.habitRepo.Delete(ctx, id)
}
