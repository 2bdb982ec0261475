package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/logger"
	"habit-tracker/internal/model"
)

type recordingNotifier struct {
	got [][]model.Recommendation
	err error
}

func (n *recordingNotifier) Notify(_ context.Context, recs []model.Recommendation) error {
	n.got = append(n.got, recs)
	return n.err
}

func TestDigestRunNotifiesAll(t *testing.T) {
	ctx := context.Background()
	svc := setupServices(t, FixedClock(testNow))

	habit, err := svc.habits.CreateHabit(ctx, HabitInput{Name: "Read"})
	require.NoError(t, err)

	failing := &recordingNotifier{err: errors.New("telegram down")}
	ok := &recordingNotifier{}
	digest := NewDigestService(svc.recs, LogNotifier{Logger: logger.Discard()}, failing, ok)

	err = digest.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram down")

	require.Len(t, ok.got, 1)
	require.Len(t, ok.got[0], 1)
	assert.Equal(t, habit.ID, ok.got[0][0].HabitID)
	assert.Len(t, failing.got, 1)
}

func TestDigestRunStopsOnCancel(t *testing.T) {
	svc := setupServices(t, FixedClock(testNow))
	n := &recordingNotifier{}
	digest := NewDigestService(svc.recs, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, digest.Run(ctx))
	assert.Empty(t, n.got)
}
