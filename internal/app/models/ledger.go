package models

import (
	"time"
)

type LedgerEventType string

const (
	LedgerEventStatusChanged LedgerEventType = "status_changed"
	LedgerEventSettled       LedgerEventType = "settled"
	LedgerEventRefunded      LedgerEventType = "refunded"
	LedgerEventChargeback    LedgerEventType = "chargeback"
	LedgerEventFailed        LedgerEventType = "failed"
)

// LedgerEvent is one occurrence in the append-only payment ledger. Events
// carrying a fingerprint are appended at most once per type+fingerprint.
type LedgerEvent struct {
	Type          LedgerEventType        `json:"type"`
	GatewayStatus string                 `json:"gatewayStatus,omitempty"`
	EventName     string                 `json:"eventName,omitempty"`
	Fingerprint   string                 `json:"fingerprint,omitempty"`
	Sandbox       bool                   `json:"sandbox,omitempty"`
	RecordedAt    time.Time              `json:"recordedAt"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

type SplitRecipient string

const (
	SplitRecipientTaxes        SplitRecipient = "taxes"
	SplitRecipientGateway      SplitRecipient = "gateway"
	SplitRecipientClinic       SplitRecipient = "clinic"
	SplitRecipientProfessional SplitRecipient = "professional"
	SplitRecipientPlatform     SplitRecipient = "platform"
)

// SplitRecipientPriority is the fixed order in which leftover cents from
// rounding are assigned back to recipients.
var SplitRecipientPriority = []SplitRecipient{
	SplitRecipientTaxes,
	SplitRecipientGateway,
	SplitRecipientClinic,
	SplitRecipientProfessional,
	SplitRecipientPlatform,
}

type SplitAllocation struct {
	Recipient   SplitRecipient `json:"recipient"`
	Percentage  float64        `json:"percentage"`
	AmountCents int64          `json:"amountCents"`
}

// Settlement is the latest settlement snapshot for one appointment. The
// split allocations always sum exactly to BaseAmountCents minus
// RemainderCents, which is zero unless the adjustment loop hit its cap.
type Settlement struct {
	SettledAt       time.Time         `json:"settledAt"`
	BaseAmountCents int64             `json:"baseAmountCents"`
	NetAmountCents  *int64            `json:"netAmountCents,omitempty"`
	Split           []SplitAllocation `json:"split"`
	RemainderCents  int64             `json:"remainderCents"`
	Fingerprint     string            `json:"fingerprint,omitempty"`
	GatewayStatus   string            `json:"gatewayStatus,omitempty"`
}

// ReversalSnapshot captures the latest refund or chargeback.
type ReversalSnapshot struct {
	OccurredAt     time.Time `json:"occurredAt"`
	AmountCents    int64     `json:"amountCents"`
	NetAmountCents *int64    `json:"netAmountCents,omitempty"`
	Fingerprint    string    `json:"fingerprint,omitempty"`
	GatewayStatus  string    `json:"gatewayStatus,omitempty"`
}

// PaymentLedger is the append-only reconciliation record embedded in
// appointment metadata.
type PaymentLedger struct {
	Currency      string            `json:"currency"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
	Events        []LedgerEvent     `json:"events"`
	Settlement    *Settlement       `json:"settlement,omitempty"`
	Refund        *ReversalSnapshot `json:"refund,omitempty"`
	Chargeback    *ReversalSnapshot `json:"chargeback,omitempty"`
}

// HasEvent reports whether an event of the given type and fingerprint was
// already appended. An empty fingerprint never matches.
func (l *PaymentLedger) HasEvent(eventType LedgerEventType, fingerprint string) bool {
	if fingerprint == "" {
		return false
	}
	for _, event := range l.Events {
		if event.Type == eventType && event.Fingerprint == fingerprint {
			return true
		}
	}
	return false
}
