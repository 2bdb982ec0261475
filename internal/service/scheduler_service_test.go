package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habit-tracker/internal/logger"
)

func TestBuildDailySpec(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "0 0 9 * * *"},
		{in: " 23:59 ", want: "0 59 23 * * *"},
		{in: "7:5", want: "0 5 7 * * *"},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := buildDailySpec(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestScheduleDailyUsesLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	s := NewSchedulerService(berlin, logger.Discard())
	id, err := s.ScheduleDaily("06:30", func() {})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next(id).In(berlin)
	assert.Equal(t, 6, next.Hour())
	assert.Equal(t, 30, next.Minute())
}

func TestClockToday(t *testing.T) {
	at := time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-12-31", FixedClock(at).Today())

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", FixedClock(at.In(tokyo)).Today())

	assert.Len(t, NewClock(nil).Today(), len("2006-01-02"))
}
