package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"agendamiento/internal/client"
	"agendamiento/internal/entities"
	"agendamiento/internal/utils"
)

const slotsWarning = "No se pudieron cargar los horarios disponibles. Intenta con otra fecha."

// ScheduleService resolves bookable time slots against the platform API.
// Lookup failures degrade to empty results with a warning; they never abort
// the workflow.
type ScheduleService struct {
	Client *client.WellnessClient
}

func NewScheduleService(c *client.WellnessClient) *ScheduleService {
	return &ScheduleService{Client: c}
}

// BlockedDates returns the dates without capacity for a session. An empty or
// invalid range falls back to the default 180-day window.
func (s *ScheduleService) BlockedDates(ctx context.Context, sessionID, from, to string) ([]string, error) {
	if !utils.ValidDate(from) || !utils.ValidDate(to) {
		from, to = utils.BlockedDatesWindow()
	}
	return s.Client.BlockedDates(ctx, sessionID, from, to)
}

// ResolveSlots resolves the slot list of a session for one date. A date in
// the blocked set short-circuits to an empty list without querying slots.
func (s *ScheduleService) ResolveSlots(ctx context.Context, sessionID, date string) entities.SlotList {
	list := entities.SlotList{Date: date, Slots: []entities.ScheduleSlot{}}

	blocked, err := s.BlockedDates(ctx, sessionID, "", "")
	if err != nil {
		log.Printf("Error loading blocked dates for session %s: %v", sessionID, err)
		list.Warning = slotsWarning
		return list
	}
	for _, d := range blocked {
		if d == date {
			list.Blocked = true
			return list
		}
	}

	slots, err := s.Client.AvailableSlots(ctx, sessionID, date)
	if err != nil {
		log.Printf("Error loading slots for session %s on %s: %v", sessionID, date, err)
		list.Warning = slotsWarning
		return list
	}
	list.Slots = slots
	return list
}

// WeeklyTimetable fetches a course's fixed timetable and its compacted form,
// which the booking endpoint later receives verbatim.
func (s *ScheduleService) WeeklyTimetable(ctx context.Context, courseID string) ([]entities.DaySchedule, string, error) {
	days, err := s.Client.WeeklyTimetable(ctx, courseID)
	if err != nil {
		return nil, "", err
	}
	compact, err := entities.CompactTimetable(days)
	if err != nil {
		return nil, "", err
	}
	return days, compact, nil
}

// SlotPicker holds the selectable slot state for one session view. Changing
// the date invalidates the selection and slot list synchronously, before any
// fetch resolves, so a stale slot can never be submitted against a new date.
// Concurrent fetches settle last-write-wins through the generation counter.
type SlotPicker struct {
	mu         sync.Mutex
	svc        *ScheduleService
	sessionID  string
	date       string
	generation uint64
	list       entities.SlotList
	selected   string
}

func NewSlotPicker(svc *ScheduleService, sessionID string) *SlotPicker {
	return &SlotPicker{svc: svc, sessionID: sessionID}
}

// SetDate switches the picker to a new date. The previous selection and slot
// list are cleared before returning; the returned generation identifies the
// fetch that is now allowed to install results.
func (p *SlotPicker) SetDate(date string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.date = date
	p.selected = ""
	p.list = entities.SlotList{Date: date, Slots: []entities.ScheduleSlot{}}
	p.generation++
	return p.generation
}

// Load fetches the slot list for the current date and installs it unless a
// newer SetDate won in the meantime. It returns the list it fetched either way.
func (p *SlotPicker) Load(ctx context.Context) entities.SlotList {
	p.mu.Lock()
	gen := p.generation
	date := p.date
	p.mu.Unlock()

	list := p.svc.ResolveSlots(ctx, p.sessionID, date)
	p.install(gen, list)
	return list
}

func (p *SlotPicker) install(gen uint64, list entities.SlotList) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return false
	}
	p.list = list
	return true
}

// Select marks a slot as chosen; it must be present in the installed list.
func (p *SlotPicker) Select(slotID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, slot := range p.list.Slots {
		if slot.ID == slotID {
			p.selected = slotID
			return nil
		}
	}
	return fmt.Errorf("horario %s no está disponible para la fecha %s", slotID, p.date)
}

func (p *SlotPicker) Selected() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

func (p *SlotPicker) Slots() []entities.ScheduleSlot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.list.Slots
}
