package responses

import (
	"onterapi-service/internal/app/models"
)

type AppointmentLedger struct {
	AppointmentID        string                `json:"appointmentId"`
	PaymentStatus        models.PaymentStatus  `json:"paymentStatus"`
	PaymentTransactionID string                `json:"paymentTransactionId"`
	Ledger               *models.PaymentLedger `json:"ledger"`
}
