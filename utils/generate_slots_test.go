package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		gran      time.Duration
		wantTimes []string
		wantErr   error
	}{
		{
			name:      "one hour at 30 minutes",
			start:     "09:00",
			end:       "10:00",
			gran:      30 * time.Minute,
			wantTimes: []string{"09:00", "09:30"},
		},
		{
			name:      "uneven tail dropped",
			start:     "09:00",
			end:       "09:50",
			gran:      30 * time.Minute,
			wantTimes: []string{"09:00"},
		},
		{
			name:      "zero-width window",
			start:     "10:00",
			end:       "10:00",
			gran:      30 * time.Minute,
			wantTimes: []string{},
		},
		{
			name:      "window shorter than granularity",
			start:     "09:00",
			end:       "09:20",
			gran:      30 * time.Minute,
			wantTimes: []string{},
		},
		{
			name:      "15 minute granularity",
			start:     "09:00",
			end:       "10:00",
			gran:      15 * time.Minute,
			wantTimes: []string{"09:00", "09:15", "09:30", "09:45"},
		},
		{
			name:      "window not divisible keeps only full slots",
			start:     "18:00",
			end:       "19:45",
			gran:      30 * time.Minute,
			wantTimes: []string{"18:00", "18:30", "19:00"},
		},
		{
			name:    "start after end",
			start:   "11:00",
			end:     "10:00",
			gran:    30 * time.Minute,
			wantErr: ErrInvalidRange,
		},
		{
			name:    "malformed start",
			start:   "9am",
			end:     "10:00",
			gran:    30 * time.Minute,
			wantErr: ErrInvalidTime,
		},
		{
			name:    "malformed end",
			start:   "09:00",
			end:     "25:00",
			gran:    30 * time.Minute,
			wantErr: ErrInvalidTime,
		},
		{
			name:    "zero granularity",
			start:   "09:00",
			end:     "10:00",
			gran:    0,
			wantErr: ErrInvalidGranularity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(tt.start, tt.end, tt.gran)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, slots, len(tt.wantTimes))
			for i, s := range slots {
				assert.Equal(t, tt.wantTimes[i], s.Time)
				assert.True(t, s.IsActive)
				assert.False(t, s.Booked)
			}
		})
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	first, err := GenerateSlots("08:00", "17:00", 30*time.Minute)
	assert.NoError(t, err)
	second, err := GenerateSlots("08:00", "17:00", 30*time.Minute)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 18)
}

func TestGenerateSlotsWindowCoverage(t *testing.T) {
	start, end := "09:00", "13:10"
	gran := 25 * time.Minute
	slots, err := GenerateSlots(start, end, gran)
	assert.NoError(t, err)

	// floor((end - start) / granularity) slots, every one inside [start, end)
	assert.Len(t, slots, 10)
	for _, s := range slots {
		assert.GreaterOrEqual(t, s.Time, start)
		assert.Less(t, s.Time, end)
	}
}

func TestSlotGranularityDefault(t *testing.T) {
	t.Setenv("SLOT_GRANULARITY_MINUTES", "")
	assert.Equal(t, 30*time.Minute, SlotGranularity())

	t.Setenv("SLOT_GRANULARITY_MINUTES", "15")
	assert.Equal(t, 15*time.Minute, SlotGranularity())

	t.Setenv("SLOT_GRANULARITY_MINUTES", "junk")
	assert.Equal(t, 30*time.Minute, SlotGranularity())
}
