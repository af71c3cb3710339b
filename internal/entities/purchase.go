package entities

// ResourceKind distinguishes the two bookable resources of the platform.
type ResourceKind string

const (
	KindSession ResourceKind = "session"
	KindCourse  ResourceKind = "course"
)

// Label is the resource name the payment endpoints expect.
func (k ResourceKind) Label() string {
	if k == KindCourse {
		return "Escuela"
	}
	return "Sesión"
}

// Payment rails.
const (
	RailBinance  = "binance"
	RailTodayPay = "todaypay"
)

// PurchaseRequest is one submission of the booking-and-payment workflow.
// Constructed fresh per attempt, never persisted beyond the in-flight run.
type PurchaseRequest struct {
	ResourceKind ResourceKind      `json:"resource_kind"`
	ResourceID   string            `json:"resource_id"`
	AmountUSD    float64           `json:"amount_usd"`
	Rail         string            `json:"rail"`
	Currency     string            `json:"currency,omitempty"`
	SessionDate  string            `json:"session_date,omitempty"` // YYYY-MM-DD
	ScheduleID   string            `json:"schedule_id,omitempty"`
	Timetable    string            `json:"timetable,omitempty"` // compacted course timetable
	Observations string            `json:"observations"`
	Fields       map[string]string `json:"fields,omitempty"`
	UserName     string            `json:"user_name,omitempty"`
	UserEmail    string            `json:"user_email,omitempty"`
	UserPhone    string            `json:"user_phone,omitempty"`
}
