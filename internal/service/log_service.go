package service

import (
	"context"
	"time"

	"habit-tracker/internal/model"
	"habit-tracker/internal/repository"
)

// LogInput carries the optional fields of a completion. Empty values are
// replaced by defaults.
type LogInput struct {
	Status  string
	LogDate string
}

// LogService appends completions and answers recency queries.
type LogService struct {
	habits  *HabitService
	logRepo *repository.LogRepository
	clock   Clock
}

func NewLogService(habits *HabitService, logRepo *repository.LogRepository, clock Clock) *LogService {
	return &LogService{habits: habits, logRepo: logRepo, clock: clock}
}

// AppendLog records a completion for an existing habit. Status defaults to
// "completed" and the date to today.
func (s *LogService) AppendLog(ctx context.Context, habitID uint, input LogInput) (*model.Log, error) {
	if _, err := s.habits.GetHabit(ctx, habitID); err != nil {
		return nil, err
	}

	entry := model.Log{
		HabitID: habitID,
		LogDate: input.LogDate,
		Status:  input.Status,
	}
	if entry.Status == "" {
		entry.Status = model.DefaultLogStatus
	}
	if entry.LogDate == "" {
		entry.LogDate = s.clock.Today()
	} else if _, err := time.Parse(model.DateLayout, entry.LogDate); err != nil {
		return nil, NewValidationError("log_date must be a date in YYYY-MM-DD format")
	}

	if err := s.logRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// MostRecentFor returns the latest log of the habit, or nil if none exist.
func (s *LogService) MostRecentFor(ctx context.Context, habitID uint) (*model.Log, error) {
	return s.logRepo.MostRecentFor(ctx, habitID)
}

// ListLogs returns all logs of a habit, including logs of a deleted habit.
func (s *LogService) ListLogs(ctx context.Context, habitID uint) ([]model.Log, error) {
	return s.logRepo.ListFor(ctx, habitID)
}
