package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"agendamiento/internal/entities"
	apperrors "agendamiento/internal/errors"
)

// WellnessClient talks to the platform API that owns resources, schedules
// and payment orders. All orchestration traffic goes through here.
type WellnessClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewWellnessClient(baseURL, token string, httpClient *http.Client) *WellnessClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &WellnessClient{BaseURL: baseURL, Token: token, HTTP: httpClient}
}

// ScheduleSession reserves a session slot for a date.
func (c *WellnessClient) ScheduleSession(ctx context.Context, booking entities.SessionBooking) (*entities.APIResponse, error) {
	return c.postJSON(ctx, "/sesiones_agendar", booking)
}

// ScheduleCourse reserves a course, sending the compacted timetable back
// verbatim. The backend is the source of truth for conflicts.
func (c *WellnessClient) ScheduleCourse(ctx context.Context, booking entities.CourseBooking) (*entities.APIResponse, error) {
	return c.postJSON(ctx, "/escuela_agendar", booking)
}

// CreateBinanceOrder opens a crypto-rail payment order.
func (c *WellnessClient) CreateBinanceOrder(ctx context.Context, order entities.BinanceOrder) (*entities.APIResponse, error) {
	return c.postJSON(ctx, "/compra/binance", order)
}

// CreateTodayPayOrder opens a local-rail payment order. The payload shape
// varies per currency, hence the map.
func (c *WellnessClient) CreateTodayPayOrder(ctx context.Context, order map[string]interface{}) (*entities.APIResponse, error) {
	return c.postJSON(ctx, "/compra/todaypay", order)
}

// BlockedDates returns the dates with zero bookable capacity for a session
// within [from, to], formatted YYYY-MM-DD.
func (c *WellnessClient) BlockedDates(ctx context.Context, sessionID, from, to string) ([]string, error) {
	path := fmt.Sprintf("/sesiones/%s/fechas-no-disponibles?fecha_inicio=%s&fecha_fin=%s",
		url.PathEscape(sessionID), url.QueryEscape(from), url.QueryEscape(to))
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Fechas []string `json:"fechas_no_disponibles"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("error decoding blocked dates: %w", err)
	}
	return resp.Fechas, nil
}

type upstreamSlot struct {
	ID          json.Number `json:"id"`
	Display     string      `json:"display"`
	HoraInicio  string      `json:"hora_inicio"`
	HoraFin     string      `json:"hora_fin"`
	DiaSemanaID int         `json:"dia_semana_id"`
}

// AvailableSlots returns the bookable slots of a session for one date.
func (c *WellnessClient) AvailableSlots(ctx context.Context, sessionID, date string) ([]entities.ScheduleSlot, error) {
	path := fmt.Sprintf("/horarios-disponibles?fecha=%s&sesion_id=%s",
		url.QueryEscape(date), url.QueryEscape(sessionID))
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Success  bool           `json:"success"`
		Horarios []upstreamSlot `json:"horarios"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("error decoding available slots: %w", err)
	}
	if !resp.Success {
		return nil, nil
	}
	slots := make([]entities.ScheduleSlot, 0, len(resp.Horarios))
	for _, h := range resp.Horarios {
		slots = append(slots, entities.ScheduleSlot{
			ID:        h.ID.String(),
			Display:   h.Display,
			StartTime: h.HoraInicio,
			EndTime:   h.HoraFin,
			DayOfWeek: h.DiaSemanaID,
			Available: true,
		})
	}
	return slots, nil
}

// WeeklyTimetable returns the fixed weekday timetable of a course.
func (c *WellnessClient) WeeklyTimetable(ctx context.Context, courseID string) ([]entities.DaySchedule, error) {
	body, err := c.get(ctx, "/horario-escuela/"+url.PathEscape(courseID))
	if err != nil {
		return nil, err
	}
	var resp struct {
		Horarios []entities.DaySchedule `json:"horarios"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("error decoding weekly timetable: %w", err)
	}
	return resp.Horarios, nil
}

func (c *WellnessClient) postJSON(ctx context.Context, path string, payload interface{}) (*entities.APIResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding payload for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &apperrors.NetworkError{Op: "POST " + path, Err: err}
	}
	defer res.Body.Close()

	var envelope entities.APIResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		if res.StatusCode >= 300 {
			return nil, &apperrors.NetworkError{Op: "POST " + path, Err: fmt.Errorf("status %d", res.StatusCode)}
		}
		return nil, fmt.Errorf("error decoding response from %s: %w", path, err)
	}
	// Rejections arrive as a decodable envelope with success=false even on
	// non-2xx statuses; those are not transport failures.
	if res.StatusCode >= 300 && envelope.Message == "" {
		return nil, &apperrors.NetworkError{Op: "POST " + path, Err: fmt.Errorf("status %d", res.StatusCode)}
	}
	return &envelope, nil
}

func (c *WellnessClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &apperrors.NetworkError{Op: "GET " + path, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return nil, &apperrors.NetworkError{Op: "GET " + path, Err: fmt.Errorf("status %d", res.StatusCode)}
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(res.Body); err != nil {
		return nil, &apperrors.NetworkError{Op: "GET " + path, Err: err}
	}
	return buf.Bytes(), nil
}

func (c *WellnessClient) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}
