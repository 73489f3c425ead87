package models

import (
	"time"
)

type PaymentEventKind string

const (
	PaymentEventStatusChanged PaymentEventKind = "payment.status_changed"
	PaymentEventSettled       PaymentEventKind = "payment.settled"
	PaymentEventRefunded      PaymentEventKind = "payment.refunded"
	PaymentEventChargeback    PaymentEventKind = "payment.chargeback"
)

// PaymentAmountSnapshot carries the gateway-reported money figures on a
// lifecycle event. Values are in the gateway's decimal representation.
type PaymentAmountSnapshot struct {
	Value    float64 `json:"value"`
	NetValue float64 `json:"netValue,omitempty"`
}

// PaymentLifecycleEvent is published by the webhook processor and consumed
// by the reconciliation service. Delivery is at-least-once; the Fingerprint
// is the dedup key.
type PaymentLifecycleEvent struct {
	Kind           PaymentEventKind       `json:"kind"`
	TenantID       string                 `json:"tenantId"`
	ClinicID       string                 `json:"clinicId"`
	AppointmentID  string                 `json:"appointmentId"`
	PreviousStatus PaymentStatus          `json:"previousStatus,omitempty"`
	NewStatus      PaymentStatus          `json:"newStatus"`
	GatewayStatus  string                 `json:"gatewayStatus,omitempty"`
	EventName      string                 `json:"eventName,omitempty"`
	Fingerprint    string                 `json:"fingerprint,omitempty"`
	Sandbox        bool                   `json:"sandbox,omitempty"`
	Amount         *PaymentAmountSnapshot `json:"amount,omitempty"`
	OccurredAt     time.Time              `json:"occurredAt"`
}

// OverbookingReviewedEvent is published for both approve and reject
// decisions with one schema so downstream consumers handle a single shape.
type OverbookingReviewedEvent struct {
	TenantID      string                 `json:"tenantId"`
	ClinicID      string                 `json:"clinicId"`
	HoldID        string                 `json:"holdId"`
	Status        OverbookingStatus      `json:"status"`
	RiskScore     float64                `json:"riskScore"`
	Threshold     float64                `json:"threshold"`
	Reasons       []string               `json:"reasons,omitempty"`
	Context       map[string]interface{} `json:"context,omitempty"`
	ReviewedBy    string                 `json:"reviewedBy"`
	Justification string                 `json:"justification,omitempty"`
	ReviewedAt    time.Time              `json:"reviewedAt"`
}
