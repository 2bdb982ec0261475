package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"habit-tracker/internal/model"
)

// Notifier delivers the daily recommendation digest somewhere.
type Notifier interface {
	Notify(ctx context.Context, recs []model.Recommendation) error
}

// LogNotifier writes the digest to the application log.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(_ context.Context, recs []model.Recommendation) error {
	n.Logger.Info("daily digest", "due", len(recs))
	for _, rec := range recs {
		n.Logger.Info(rec.Recommendation, "habit_id", rec.HabitID)
	}
	return nil
}

// DigestService fans the current recommendations out to every notifier.
type DigestService struct {
	recs      *RecommendationService
	notifiers []Notifier
}

func NewDigestService(recs *RecommendationService, notifiers ...Notifier) *DigestService {
	return &DigestService{recs: recs, notifiers: notifiers}
}

// Run computes recommendations once and notifies everyone. A failing
// notifier does not stop the others.
func (s *DigestService) Run(ctx context.Context) error {
	recs, err := s.recs.RecommendAll(ctx)
	if err != nil {
		return fmt.Errorf("build digest: %w", err)
	}

	var errs []error
	for _, n := range s.notifiers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := n.Notify(ctx, recs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
