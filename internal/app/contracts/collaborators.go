package contracts

import (
	"context"

	"onterapi-service/internal/app/models"
)

// AuditSink records state transitions for audit continuity. Register is
// fire-and-forget: implementations log failures and never propagate them.
type AuditSink interface {
	Register(ctx context.Context, entry *models.AuditEntry)
}

// EventPublisher pushes domain events onto the internal bus.
type EventPublisher interface {
	PublishPaymentLifecycle(ctx context.Context, event *models.PaymentLifecycleEvent) error
	PublishOverbookingReviewed(ctx context.Context, event *models.OverbookingReviewedEvent) error
}

// PayoutRequest carries everything the payout collaborator needs to move a
// settled amount to its stakeholders.
type PayoutRequest struct {
	TenantID       string                 `json:"tenantId"`
	ClinicID       string                 `json:"clinicId"`
	AppointmentID  string                 `json:"appointmentId"`
	ProfessionalID string                 `json:"professionalId"`
	Settlement     *models.Settlement     `json:"settlement"`
	Gateway        map[string]interface{} `json:"gateway,omitempty"`
}

type PayoutRequester interface {
	RequestPayout(ctx context.Context, request *PayoutRequest) error
}

// PaymentNotifier informs downstream channels (patient/clinic messaging)
// that a payment lifecycle step happened.
type PaymentNotifier interface {
	NotifyPaymentEvent(ctx context.Context, event *models.PaymentLifecycleEvent) error
}

// WebhookArchive stores raw gateway payloads for dispute and chargeback
// evidence. Failures are logged by callers, never propagated.
type WebhookArchive interface {
	StorePayload(ctx context.Context, provider, transactionID string, payload []byte) (string, error)
}
