package service

import (
	"context"
	"encoding/json"
	"log"

	"agendamiento/internal/client"
	"agendamiento/internal/entities"
	apperrors "agendamiento/internal/errors"
)

// BinanceService is the crypto payment rail. Orders are always placed in
// USDT for the untouched USD amount; no currency fields apply.
type BinanceService struct {
	Client *client.WellnessClient
}

func NewBinanceService(c *client.WellnessClient) *BinanceService {
	return &BinanceService{Client: c}
}

type BinanceOrderParams struct {
	AmountUSD     float64
	ResourceLabel string
	ResourceID    string
	SessionDate   string
	ScheduleID    string
	Observations  string
}

// CreateOrder places a crypto payment order. A response without a redirect
// URL still counts as success; redirecting is optional on this rail.
func (s *BinanceService) CreateOrder(ctx context.Context, p BinanceOrderParams) (*entities.APIResponse, entities.PaymentData, error) {
	if p.AmountUSD <= 0 || p.ResourceID == "" {
		return nil, entities.PaymentData{}, &apperrors.PaymentError{Message: "Error al generar orden de pago"}
	}

	order := entities.BinanceOrder{
		Moneda:             "USDT",
		Monto:              p.AmountUSD,
		NombreRecurso:      p.ResourceLabel,
		ProductoServicioID: p.ResourceID,
		Tipo:               "Mobil",
		FechaSesion:        p.SessionDate,
		HorarioID:          p.ScheduleID,
		Observaciones:      p.Observations,
	}

	resp, err := s.Client.CreateBinanceOrder(ctx, order)
	if err != nil {
		return nil, entities.PaymentData{}, err
	}
	if !resp.Success {
		return nil, entities.PaymentData{}, &apperrors.PaymentError{Message: resp.Message}
	}

	var data entities.PaymentData
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			log.Printf("Binance order succeeded but data was not decodable: %v", err)
		}
	}
	return resp, data, nil
}
