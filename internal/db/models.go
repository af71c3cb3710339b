package db

import "time"

// Purchase is the audit record of one orchestration run. The workflow itself
// stays request-scoped; this row only documents what happened.
type Purchase struct {
	ID            int
	Code          string
	ResourceKind  string
	ResourceID    string
	Rail          string
	Currency      string
	AmountUSD     float64
	AmountCharged float64
	Status        string
	FailureStage  string
	Message       string
	PaymentURL    string
	UserEmail     string
	UserPhone     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
}
