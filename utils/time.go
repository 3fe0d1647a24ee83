package utils

import (
	"os"
	"time"
)

const dateLayout = "2006-01-02"

// ServiceLocation returns the timezone used for calendar comparisons.
// Dates are stored as plain calendar strings; the timezone only decides
// what "today" means when filtering past dates out of the booking view.
func ServiceLocation() *time.Location {
	name := os.Getenv("TIME_ZONE")
	if name == "" {
		name = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local // Fallback if the zone database lacks the name
	}
	return loc
}

// NormalizeDate validates a calendar-date string and returns it in canonical
// YYYY-MM-DD form.
func NormalizeDate(s string) (string, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", err
	}
	return d.Format(dateLayout), nil
}

// Today returns the current calendar date in the service timezone.
func Today() string {
	return time.Now().In(ServiceLocation()).Format(dateLayout)
}

// Tomorrow returns the next calendar date in the service timezone.
func Tomorrow() string {
	return time.Now().In(ServiceLocation()).AddDate(0, 0, 1).Format(dateLayout)
}
