package api

import "agendamiento/internal/entities"

// Blocked dates
type BlockedDatesResponse struct {
	BlockedDates []string `json:"blocked_dates"`
}

// Timetable
type TimetableResponse struct {
	Days    []entities.DaySchedule `json:"days"`
	Compact string                 `json:"compact"`
}
