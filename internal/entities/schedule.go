package entities

import (
	"encoding/json"
	"strings"
)

// ScheduleSlot is one bookable time unit for a session on a given date.
type ScheduleSlot struct {
	ID        string `json:"id"`
	Display   string `json:"display"`
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
	DayOfWeek int    `json:"dia_semana_id"`
	Available bool   `json:"available"`
}

// SlotList is the outcome of resolving slots for a date. Blocked takes
// display priority over an empty slot list.
type SlotList struct {
	Date    string         `json:"date"`
	Blocked bool           `json:"blocked"`
	Slots   []ScheduleSlot `json:"slots"`
	Warning string         `json:"warning,omitempty"`
}

// DaySchedule is one weekday row of a course's fixed timetable, as the
// platform reports it.
type DaySchedule struct {
	CourseID     int    `json:"escuela_id"`
	DayOfWeek    string `json:"dia_semana"`
	TotalSlots   int    `json:"total_horarios"`
	FullSchedule string `json:"horarios_completos"`
	Groups       int    `json:"grupos"`
}

// TimeRanges splits the " | "-separated schedule text into individual ranges.
func (d DaySchedule) TimeRanges() []string {
	parts := strings.Split(d.FullSchedule, " | ")
	ranges := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			ranges = append(ranges, t)
		}
	}
	return ranges
}

type compactDay struct {
	E int    `json:"e"`
	D string `json:"d"`
	T int    `json:"t"`
	H string `json:"h"`
	G int    `json:"g"`
}

// CompactTimetable serializes a weekly timetable into the abbreviated array
// the booking endpoint expects verbatim (day names cut to 3 characters,
// e.g. "Miércoles" -> "Mié").
func CompactTimetable(days []DaySchedule) (string, error) {
	compact := make([]compactDay, 0, len(days))
	for _, d := range days {
		compact = append(compact, compactDay{
			E: d.CourseID,
			D: abbreviateDay(d.DayOfWeek),
			T: d.TotalSlots,
			H: d.FullSchedule,
			G: d.Groups,
		})
	}
	out, err := json.Marshal(compact)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func abbreviateDay(day string) string {
	runes := []rune(day)
	if len(runes) <= 3 {
		return day
	}
	return string(runes[:3])
}
