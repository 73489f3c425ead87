package responses

import (
	"time"

	"onterapi-service/internal/app/models"
)

type HoldConfirmation struct {
	AppointmentID        string               `json:"appointmentId"`
	ClinicID             string               `json:"clinicId"`
	HoldID               string               `json:"holdId"`
	PaymentTransactionID string               `json:"paymentTransactionId"`
	ConfirmedAt          time.Time            `json:"confirmedAt"`
	PaymentStatus        models.PaymentStatus `json:"paymentStatus"`
}
