package entities

import "encoding/json"

// APIResponse is the envelope every platform endpoint answers with.
// ErrorField is only populated by the local payment rail, and only on newer
// backend versions; older ones embed the same object inside Message.
type APIResponse struct {
	Success    bool                `json:"success"`
	Data       json.RawMessage     `json:"data"`
	Message    string              `json:"message"`
	ErrorField map[string][]string `json:"error_field,omitempty"`
}

// PaymentData carries the redirect URL of an initiated payment order. The
// crypto rail names it url_pago_web, the local rail url_pago.
type PaymentData struct {
	URLPagoWeb string `json:"url_pago_web,omitempty"`
	URLPago    string `json:"url_pago,omitempty"`
}

// RedirectURL returns whichever payment URL the rail provided, if any.
func (p PaymentData) RedirectURL() string {
	if p.URLPagoWeb != "" {
		return p.URLPagoWeb
	}
	return p.URLPago
}

// SessionBooking is the reservation payload for a session.
type SessionBooking struct {
	SesionWebID   string `json:"sesion_web_id"`
	FechaSesion   string `json:"fecha_sesion"`
	HorarioID     string `json:"horario_id"`
	Observaciones string `json:"observaciones"`
}

// CourseBooking is the reservation payload for a course; Horario is the
// compacted timetable sent back verbatim.
type CourseBooking struct {
	EscuelaID string `json:"escuela_id"`
	Horario   string `json:"horario"`
}

// BinanceOrder is the crypto-rail payment order. Moneda is always USDT and
// Monto is the USD amount, untouched by conversion.
type BinanceOrder struct {
	Moneda             string  `json:"moneda"`
	Monto              float64 `json:"monto"`
	NombreRecurso      string  `json:"nombre_recurso"`
	ProductoServicioID string  `json:"producto_servicio_id"`
	Tipo               string  `json:"tipo"`
	FechaSesion        string  `json:"fecha_sesion"`
	HorarioID          string  `json:"horario_id"`
	Observaciones      string  `json:"observaciones"`
}
