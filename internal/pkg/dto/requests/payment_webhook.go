package requests

import (
	"time"
)

// AsaasPayment is the payment object embedded in an Asaas webhook envelope.
// Monetary values are decimal units, not cents.
type AsaasPayment struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"`
	Value             float64 `json:"value"`
	NetValue          float64 `json:"netValue"`
	DueDate           string  `json:"dueDate"`
	PaymentDate       string  `json:"paymentDate"`
	ClientPaymentDate string  `json:"clientPaymentDate"`
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	ExternalReference string  `json:"externalReference"`
}

// AsaasWebhookPayload is the envelope Asaas posts on every payment event.
// The envelope id doubles as the deduplication fingerprint.
type AsaasWebhookPayload struct {
	ID          string        `json:"id"`
	Event       string        `json:"event"`
	DateCreated string        `json:"dateCreated"`
	Sandbox     bool          `json:"sandbox"`
	Payment     *AsaasPayment `json:"payment"`
}

type PaymentWebhook struct {
	Provider   string              `json:"provider" validate:"required"`
	ReceivedAt time.Time           `json:"receivedAt"`
	Payload    AsaasWebhookPayload `json:"payload"`
	// RawBody is the untouched request body, archived for dispute evidence.
	RawBody []byte `json:"-"`
}
