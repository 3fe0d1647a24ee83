package utils

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/docspot/availability-service/models"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTime is returned when a working-hours bound is not "HH:MM" 24h.
	ErrInvalidTime = errors.New("time must be in HH:MM 24h format")
	// ErrInvalidRange is returned when the window start is after its end.
	ErrInvalidRange = errors.New("start time must not be after end time")
	// ErrInvalidGranularity is returned for a non-positive slot width.
	ErrInvalidGranularity = errors.New("granularity must be positive")
)

// GenerateSlots slices the working-hours window [start, end) into slots at
// each granularity boundary, all offered and unbooked. A window shorter than
// one granularity yields an empty list, not an error; callers decide whether
// zero slots is worth warning about. Pure function, no I/O.
func GenerateSlots(start, end string, granularity time.Duration) ([]models.Slot, error) {
	if granularity <= 0 {
		return nil, ErrInvalidGranularity
	}

	startTime, err := time.Parse(timeLayout, start)
	if err != nil {
		return nil, ErrInvalidTime
	}
	endTime, err := time.Parse(timeLayout, end)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if startTime.After(endTime) {
		return nil, ErrInvalidRange
	}

	slots := []models.Slot{}
	for cur := startTime; !cur.Add(granularity).After(endTime); cur = cur.Add(granularity) {
		slots = append(slots, models.Slot{
			Time:     cur.Format(timeLayout),
			IsActive: true,
		})
	}
	return slots, nil
}

// SlotGranularity reads the configured slot width, defaulting to 30 minutes.
func SlotGranularity() time.Duration {
	if v := os.Getenv("SLOT_GRANULARITY_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return 30 * time.Minute
}
