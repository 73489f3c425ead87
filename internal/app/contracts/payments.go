package contracts

import (
	"context"

	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/dto/requests"
	"onterapi-service/internal/pkg/dto/responses"
)

// PaymentWebhookUsecase maps an external gateway payload to an internal
// payment status and mutates appointment, hold and ledger. Safe to retry
// from any partial-failure point.
type PaymentWebhookUsecase interface {
	Process(ctx context.Context, request *requests.PaymentWebhook) error
}

// ReconciliationUsecase consumes internally published payment-lifecycle
// events and appends ledger entries. Handle never returns an error for a
// missing appointment; duplicate fingerprints are silent no-ops.
type ReconciliationUsecase interface {
	Handle(ctx context.Context, event *models.PaymentLifecycleEvent) error
}

// LedgerUsecase is the read surface over the appointment ledger.
type LedgerUsecase interface {
	GetLedger(ctx context.Context, appointmentID string) (*responses.AppointmentLedger, error)
}
