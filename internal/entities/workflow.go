package entities

import "encoding/json"

// Stage identifies where in the workflow an orchestration run currently is,
// or where it failed. Exactly one stage applies at a time.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageValidating Stage = "validating"
	StageReserving  Stage = "reserving"
	StagePaying     Stage = "paying"
	StageCompleted  Stage = "completed"
)

// WorkflowResult is the terminal outcome of one orchestration run. It is
// consumed immediately by the caller and discarded.
type WorkflowResult struct {
	Success    bool            `json:"success"`
	Stage      Stage           `json:"stage"`
	Code       string          `json:"code,omitempty"`
	Message    string          `json:"message,omitempty"`
	Booking    json.RawMessage `json:"booking,omitempty"`
	Payment    json.RawMessage `json:"payment,omitempty"`
	PaymentURL string          `json:"payment_url,omitempty"`
}
