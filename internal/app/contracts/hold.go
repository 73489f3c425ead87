package contracts

import (
	"context"
	"time"

	"onterapi-service/internal/app/models"
)

// HoldOverlapQuery narrows an overlap search to one professional's window
// across the whole tenant. ExcludeHoldID removes the hold under evaluation
// from its own search.
type HoldOverlapQuery struct {
	TenantID       string
	ProfessionalID string
	Start          time.Time
	End            time.Time
	ExcludeHoldID  string
	Statuses       []models.HoldStatus
}

type HoldRepository interface {
	CreateHold(ctx context.Context, hold *models.Hold) (*models.Hold, error)
	FindByID(ctx context.Context, tenantID, holdID string) (*models.Hold, error)
	FindByIdempotencyKey(ctx context.Context, tenantID, clinicID, idempotencyKey string) (*models.Hold, error)
	FindActiveByClinic(ctx context.Context, tenantID, clinicID string) ([]models.Hold, error)
	FindOverlapping(ctx context.Context, query *HoldOverlapQuery) ([]models.Hold, error)
	// UpdateStatus transitions the hold only when its current status equals
	// fromStatus. It returns the updated hold, or nil when the guard failed.
	UpdateStatus(ctx context.Context, holdID string, fromStatus, toStatus models.HoldStatus, patch *models.Hold) (*models.Hold, error)
	PatchMetadata(ctx context.Context, holdID string, metadata models.HoldMetadata) (*models.Hold, error)
	UpdatePaymentStatus(ctx context.Context, holdID string, status models.PaymentStatus) error
	// FindDuePending returns pending holds whose ttlExpiresAt or start has
	// already passed, bounded by limit. Used by the expiry sweep.
	FindDuePending(ctx context.Context, now time.Time, limit int) ([]models.Hold, error)
}
