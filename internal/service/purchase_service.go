package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"agendamiento/internal/client"
	"agendamiento/internal/currency"
	"agendamiento/internal/db"
	"agendamiento/internal/entities"
	apperrors "agendamiento/internal/errors"
	"agendamiento/internal/utils"
)

const (
	statusPending   = "pending"
	statusCompleted = "completed"
	statusFailed    = "failed"
	statusAbandoned = "abandoned"
)

// PurchaseStore records orchestration runs for the audit trail.
type PurchaseStore interface {
	CreatePurchase(p *db.Purchase) error
	UpdateOutcome(id int, status, failureStage, message, paymentURL string, amountCharged float64) error
}

// PurchaseNotifier sends the confirmation messages after a completed run.
type PurchaseNotifier interface {
	SendPurchaseEmail(p db.Purchase)
	SendPurchaseSMS(p db.Purchase)
}

// PurchaseService coordinates one booking-and-payment run: validate the
// submission, reserve the resource, then open a payment order on the chosen
// rail. Each run walks Idle -> Validating -> Reserving -> PayingOut ->
// Completed; a failure exits to Idle from whichever stage it hit. A failed
// payment never rolls back the reservation and nothing is retried; the
// caller must resubmit.
type PurchaseService struct {
	Client   *client.WellnessClient
	Rates    *client.RatesClient
	Binance  *BinanceService
	TodayPay *TodayPayService
	store    PurchaseStore
	notifier PurchaseNotifier
}

func NewPurchaseService(wellness *client.WellnessClient, rates *client.RatesClient,
	binance *BinanceService, todayPay *TodayPayService,
	store PurchaseStore, notifier PurchaseNotifier) *PurchaseService {
	return &PurchaseService{
		Client:   wellness,
		Rates:    rates,
		Binance:  binance,
		TodayPay: todayPay,
		store:    store,
		notifier: notifier,
	}
}

// Purchase runs one orchestration and returns its terminal result. It never
// returns a Go error: every failure is folded into the WorkflowResult the
// caller shows the user.
func (s *PurchaseService) Purchase(ctx context.Context, req *entities.PurchaseRequest) *entities.WorkflowResult {
	code := fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)

	// Validating: everything here resolves locally, before any network call.
	if err := s.validate(req); err != nil {
		return s.fail(nil, code, entities.StageValidating, err)
	}

	record := &db.Purchase{
		Code:         code,
		ResourceKind: string(req.ResourceKind),
		ResourceID:   req.ResourceID,
		Rail:         req.Rail,
		Currency:     req.Currency,
		AmountUSD:    req.AmountUSD,
		Status:       statusPending,
		UserEmail:    req.UserEmail,
		UserPhone:    req.UserPhone,
	}
	if s.store != nil {
		if err := s.store.CreatePurchase(record); err != nil {
			// The audit trail never blocks a purchase.
			log.Printf("Error creating purchase record %s: %v", code, err)
			record = nil
		}
	} else {
		record = nil
	}

	// Reserving: exactly one attempt per submit, regardless of rail.
	booking, err := s.reserve(ctx, req)
	if err != nil {
		return s.fail(record, code, entities.StageReserving, err)
	}

	// PayingOut: branch on rail. A failure here leaves the reservation
	// standing for the backend to reconcile.
	payment, data, amountCharged, err := s.pay(ctx, req)
	if err != nil {
		return s.fail(record, code, entities.StagePaying, err)
	}

	redirectURL := data.RedirectURL()
	if record != nil {
		if err := s.store.UpdateOutcome(record.ID, statusCompleted, "", "", redirectURL, amountCharged); err != nil {
			log.Printf("Error completing purchase record %s: %v", code, err)
		}
		if s.notifier != nil {
			completed := *record
			completed.Status = statusCompleted
			completed.PaymentURL = redirectURL
			completed.AmountCharged = amountCharged
			go s.notifier.SendPurchaseEmail(completed)
			go s.notifier.SendPurchaseSMS(completed)
		}
	}

	return &entities.WorkflowResult{
		Success:    true,
		Stage:      entities.StageCompleted,
		Code:       code,
		Message:    "Tu orden de pago ha sido generada correctamente.",
		Booking:    booking.Data,
		Payment:    payment.Data,
		PaymentURL: redirectURL,
	}
}

// validate is the first pass. Required values must be non-empty after
// trimming; the first missing field wins, in declaration order.
func (s *PurchaseService) validate(req *entities.PurchaseRequest) error {
	if req.ResourceID == "" {
		return apperrors.NewValidationError("resource_id", "Recurso", "Recurso no especificado")
	}
	if req.Rail != entities.RailBinance && req.Rail != entities.RailTodayPay {
		return apperrors.NewValidationError("rail", "Método de pago", "Método de pago no soportado")
	}

	switch req.ResourceKind {
	case entities.KindSession:
		if req.SessionDate == "" || !utils.ValidDate(req.SessionDate) {
			return apperrors.NewValidationError("session_date", "Fecha de la Sesión",
				"Por favor selecciona una fecha para la sesión")
		}
		if req.ScheduleID == "" {
			return apperrors.NewValidationError("schedule_id", "Horario Disponible",
				"Por favor selecciona un horario disponible")
		}
	case entities.KindCourse:
		if req.Timetable == "" {
			return apperrors.NewValidationError("timetable", "Horarios",
				"No hay horarios disponibles")
		}
	default:
		return apperrors.NewValidationError("resource_kind", "Tipo de recurso", "Tipo de recurso no soportado")
	}

	if req.AmountUSD <= 0 {
		return apperrors.NewValidationError("amount_usd", "Monto", "Por favor completa la información de pago")
	}

	if req.Rail == entities.RailTodayPay {
		if req.Currency == "" {
			return apperrors.NewValidationError("currency", "Moneda", "Por favor completa la información de pago")
		}
		cfg := currency.GetConfig(req.Currency)
		for _, field := range cfg.Fields {
			if field.Required && strings.TrimSpace(req.Fields[field.Name]) == "" {
				return apperrors.NewValidationError(field.Name, field.Label,
					fmt.Sprintf("El campo %s es obligatorio", field.Label))
			}
		}
	}
	return nil
}

func (s *PurchaseService) reserve(ctx context.Context, req *entities.PurchaseRequest) (*entities.APIResponse, error) {
	var resp *entities.APIResponse
	var err error

	switch req.ResourceKind {
	case entities.KindCourse:
		resp, err = s.Client.ScheduleCourse(ctx, entities.CourseBooking{
			EscuelaID: req.ResourceID,
			Horario:   req.Timetable,
		})
	default:
		resp, err = s.Client.ScheduleSession(ctx, entities.SessionBooking{
			SesionWebID:   req.ResourceID,
			FechaSesion:   req.SessionDate,
			HorarioID:     req.ScheduleID,
			Observaciones: req.Observations,
		})
	}
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &apperrors.ReservationError{Message: resp.Message}
	}
	return resp, nil
}

func (s *PurchaseService) pay(ctx context.Context, req *entities.PurchaseRequest) (*entities.APIResponse, entities.PaymentData, float64, error) {
	// Courses have no session date; today is a bookkeeping timestamp the
	// backend ignores for scheduling.
	sessionDate := req.SessionDate
	if req.ResourceKind == entities.KindCourse {
		sessionDate = utils.Today()
	}

	if req.Rail == entities.RailBinance {
		resp, data, err := s.Binance.CreateOrder(ctx, BinanceOrderParams{
			AmountUSD:     req.AmountUSD,
			ResourceLabel: req.ResourceKind.Label(),
			ResourceID:    req.ResourceID,
			SessionDate:   sessionDate,
			ScheduleID:    req.ScheduleID,
			Observations:  req.Observations,
		})
		return resp, data, req.AmountUSD, err
	}

	// Rates are fetched fresh per run, never cached across currency changes.
	rates := s.Rates.Fetch(ctx)
	amount := currency.Round2(currency.Convert(req.AmountUSD, req.Currency, rates))

	resp, data, err := s.TodayPay.CreateOrder(ctx, TodayPayOrderParams{
		Currency:      req.Currency,
		Amount:        amount,
		ResourceLabel: req.ResourceKind.Label(),
		ResourceID:    req.ResourceID,
		SessionDate:   sessionDate,
		ScheduleID:    req.ScheduleID,
		Observations:  req.Observations,
		Fields:        req.Fields,
	})
	return resp, data, amount, err
}

func (s *PurchaseService) fail(record *db.Purchase, code string, stage entities.Stage, err error) *entities.WorkflowResult {
	message := userMessage(err)
	if record != nil && s.store != nil {
		if updateErr := s.store.UpdateOutcome(record.ID, statusFailed, string(stage), message, "", 0); updateErr != nil {
			log.Printf("Error recording failed purchase %s: %v", code, updateErr)
		}
	}
	log.Printf("Purchase %s failed at stage %s: %v", code, stage, err)
	return &entities.WorkflowResult{
		Success: false,
		Stage:   stage,
		Code:    code,
		Message: message,
	}
}

// userMessage maps an error to what the user sees: validation and
// server-rejection messages verbatim, everything transport-shaped to the
// generic localized fallback.
func userMessage(err error) string {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var reservationErr *apperrors.ReservationError
	if errors.As(err, &reservationErr) {
		return reservationErr.Error()
	}
	var paymentErr *apperrors.PaymentError
	if errors.As(err, &paymentErr) {
		return paymentErr.Error()
	}
	return apperrors.GenericFallback
}

// GetPurchaseByCode exposes an audit record for the lookup endpoint.
func (s *PurchaseService) GetPurchaseByCode(code string) (*db.Purchase, error) {
	repo, ok := s.store.(interface {
		GetPurchaseByCode(code string) (*db.Purchase, error)
	})
	if !ok {
		return nil, fmt.Errorf("purchase store does not support lookups")
	}
	return repo.GetPurchaseByCode(code)
}
