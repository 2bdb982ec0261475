package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"habit-tracker/internal/model"
)

const recommendationTemplate = "Don't forget to complete your habit: %s today!"

// RecommendationService derives daily nudges from how recently each habit was logged.
type RecommendationService struct {
	habits *HabitService
	logs   *LogService
	clock  Clock
}

func NewRecommendationService(habits *HabitService, logs *LogService, clock Clock) *RecommendationService {
	return &RecommendationService{habits: habits, logs: logs, clock: clock}
}

// RecommendAll returns one nudge per habit that was never logged or whose
// latest log is older than today, in habit list order.
func (s *RecommendationService) RecommendAll(ctx context.Context) ([]model.Recommendation, error) {
	habits, err := s.habits.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	recs := []model.Recommendation{}
	for _, habit := range habits {
		latest, err := s.logs.MostRecentFor(ctx, habit.ID)
		if err != nil {
			return nil, err
		}
		if !isDue(latest, today) {
			continue
		}
		recs = append(recs, model.Recommendation{
			HabitID:        habit.ID,
			Recommendation: fmt.Sprintf(recommendationTemplate, habit.Name),
		})
	}
	return recs, nil
}

// isDue compares ISO dates as strings. A log dated today or later is not due.
func isDue(latest *model.Log, today string) bool {
	return latest == nil || latest.LogDate < today
}

// DailySummary renders recommendations as an HTML-formatted chat message.
func (s *RecommendationService) DailySummary(recs []model.Recommendation) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Daily habits</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", s.clock.Today()))

	if len(recs) == 0 {
		builder.WriteString("✅ Everything is logged for today.")
		return builder.String()
	}
	for _, rec := range recs {
		builder.WriteString(fmt.Sprintf("• #%d %s\n", rec.HabitID, html.EscapeString(rec.Recommendation)))
	}
	builder.WriteString("\nUse /done &lt;id&gt; to log a habit.")
	return strings.TrimSpace(builder.String())
}
