package service

import (
	"fmt"
	"log"
	"strings"

	"agendamiento/internal/currency"
	"agendamiento/internal/db"
	"agendamiento/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func resourceLabel(kind string) string {
	return entities.ResourceKind(kind).Label()
}

func chargedLine(p db.Purchase) string {
	if p.Rail == entities.RailBinance {
		return fmt.Sprintf("%s USDT", currency.FormatAmount(p.AmountUSD))
	}
	return fmt.Sprintf("%s %s", currency.FormatAmount(p.AmountCharged), p.Currency)
}

func (s *SenderService) SendPurchaseEmail(p db.Purchase) {
	if p.UserEmail == "" {
		return
	}

	subject := fmt.Sprintf("Tu orden de pago está lista - Código: %s", p.Code)

	var b strings.Builder
	fmt.Fprintf(&b, "Hola,\n\nTu %s ha sido reservada y tu orden de pago fue generada.\n\n", strings.ToLower(resourceLabel(p.ResourceKind)))
	fmt.Fprintf(&b, "Detalles de la compra:\n")
	fmt.Fprintf(&b, "Código: %s\n", p.Code)
	fmt.Fprintf(&b, "Recurso: %s %s\n", resourceLabel(p.ResourceKind), p.ResourceID)
	fmt.Fprintf(&b, "Monto: %s\n", chargedLine(p))
	if p.PaymentURL != "" {
		fmt.Fprintf(&b, "\nCompleta tu pago aquí: %s\n", p.PaymentURL)
	}
	fmt.Fprintf(&b, "\nGracias por tu compra.\n")
	plainTextBody := b.String()

	htmlBody := "<p>" + strings.ReplaceAll(plainTextBody, "\n", "<br>") + "</p>"

	if err := SendEmailWithSendGrid(p.UserEmail, "", subject, plainTextBody, htmlBody); err != nil {
		log.Printf("ALERTA: La compra %s se completó, pero falló el envío del correo a %s: %v", p.Code, p.UserEmail, err)
	}
}

func (s *SenderService) SendPurchaseSMS(p db.Purchase) {
	if p.UserPhone == "" {
		return
	}

	smsMessage := fmt.Sprintf("Agendamiento: ¡Tu compra %s está lista!\nMonto: %s.\nMás detalles en tu correo.",
		p.Code, chargedLine(p))

	if err := SendSMS(p.UserPhone, smsMessage); err != nil {
		log.Printf("ALERTA: La compra %s se completó, pero falló el envío del SMS a %s: %v", p.Code, p.UserPhone, err)
	}
}
