package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"agendamiento/internal/client"
	"agendamiento/internal/currency"
	"agendamiento/internal/entities"
	apperrors "agendamiento/internal/errors"
)

// TodayPayService is the local payment rail. Each currency demands its own
// identity/payment fields, validated here a second time right before
// transmission since currency or amount may have changed after the first pass.
type TodayPayService struct {
	Client *client.WellnessClient
	IP     *client.IPClient
}

func NewTodayPayService(c *client.WellnessClient, ip *client.IPClient) *TodayPayService {
	return &TodayPayService{Client: c, IP: ip}
}

type TodayPayOrderParams struct {
	Currency      string
	Amount        float64 // already converted to the target currency
	ResourceLabel string
	ResourceID    string
	SessionDate   string
	ScheduleID    string
	Observations  string
	Fields        map[string]string
}

// CreateOrder validates the currency fields, attaches the caller's public IP
// and places a local-rail payment order. Optional fields are trimmed and
// dropped when empty; required fields block submission instead.
func (s *TodayPayService) CreateOrder(ctx context.Context, p TodayPayOrderParams) (*entities.APIResponse, entities.PaymentData, error) {
	cfg := currency.GetConfig(p.Currency)
	for _, field := range cfg.Fields {
		if field.Required && strings.TrimSpace(p.Fields[field.Name]) == "" {
			return nil, entities.PaymentData{}, apperrors.NewValidationError(field.Name, field.Label,
				fmt.Sprintf("El campo \"%s\" es obligatorio para pagos en %s", field.Label, p.Currency))
		}
	}

	payload := map[string]interface{}{
		"moneda":               p.Currency,
		"monto":                p.Amount,
		"nombre_recurso":       p.ResourceLabel,
		"producto_servicio_id": p.ResourceID,
		"ip_user":              s.IP.PublicIP(ctx),
		"fecha_sesion":         p.SessionDate,
		"horario_id":           p.ScheduleID,
		"observaciones":        p.Observations,
	}
	for _, field := range cfg.Fields {
		if v := strings.TrimSpace(p.Fields[field.Name]); v != "" {
			payload[field.Name] = v
		}
	}

	if currency.RequiresBeneficiary(p.Currency) {
		if payload["beneficiaryId"] == nil {
			return nil, entities.PaymentData{}, apperrors.NewValidationError("beneficiaryId", "Documento de identidad",
				"El documento de identidad es obligatorio")
		}
		if payload["beneficiaryType"] == nil {
			return nil, entities.PaymentData{}, apperrors.NewValidationError("beneficiaryType", "Tipo de beneficiario",
				"El tipo de beneficiario es obligatorio")
		}
		if payload["paymentType"] == nil {
			payload["paymentType"] = "CASH"
		}
	}
	if p.Currency == "BRL" && payload["docNumber"] == nil {
		return nil, entities.PaymentData{}, apperrors.NewValidationError("docNumber", "Número de Documento",
			"El número de documento es obligatorio para pagos en BRL")
	}

	resp, err := s.Client.CreateTodayPayOrder(ctx, payload)
	if err != nil {
		return nil, entities.PaymentData{}, err
	}
	if !resp.Success {
		return nil, entities.PaymentData{}, railError(resp)
	}

	var data entities.PaymentData
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			log.Printf("TodayPay order succeeded but data was not decodable: %v", err)
		}
	}
	return resp, data, nil
}

// railError turns a rejected order into a PaymentError. Field errors come
// from the structured error_field object when the backend sends one; older
// backend versions embed the same object inside the free-text message, so a
// scan of the message remains as legacy fallback.
func railError(resp *entities.APIResponse) *apperrors.PaymentError {
	fieldErrors := resp.ErrorField
	if len(fieldErrors) == 0 {
		fieldErrors = parseEmbeddedFieldErrors(resp.Message)
	}
	return &apperrors.PaymentError{Message: resp.Message, FieldErrors: fieldErrors}
}

// parseEmbeddedFieldErrors extracts a {"error_field": {...}} blob embedded in
// a free-text message. Malformed JSON is swallowed; the caller then shows the
// original message.
func parseEmbeddedFieldErrors(message string) map[string][]string {
	if !strings.Contains(message, "error_field") {
		return nil
	}
	blob := extractJSONObject(message)
	if blob == "" {
		return nil
	}

	var parsed struct {
		ErrorField map[string]interface{} `json:"error_field"`
	}
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil || len(parsed.ErrorField) == 0 {
		return nil
	}

	fieldErrors := make(map[string][]string, len(parsed.ErrorField))
	for field, raw := range parsed.ErrorField {
		switch v := raw.(type) {
		case string:
			fieldErrors[field] = []string{v}
		case []interface{}:
			var messages []string
			for _, m := range v {
				if s, ok := m.(string); ok {
					messages = append(messages, s)
				}
			}
			if len(messages) > 0 {
				fieldErrors[field] = messages
			}
		}
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// extractJSONObject returns the first balanced {...} group in s, or "".
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
