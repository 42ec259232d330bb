package services

import "time"

const (
	maintenanceWeekday = time.Tuesday
	maintenanceHour    = 7
)

// MaintenanceWindow returns the weekly window [start, end) containing t. Windows
// open every Tuesday at 07:00 UTC.
func MaintenanceWindow(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	daysBack := (int(u.Weekday()) - int(maintenanceWeekday) + 7) % 7
	start := time.Date(u.Year(), u.Month(), u.Day()-daysBack, maintenanceHour, 0, 0, 0, time.UTC)
	if start.After(u) {
		start = start.AddDate(0, 0, -7)
	}
	return start, start.AddDate(0, 0, 7)
}
