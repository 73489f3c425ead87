package contracts

import (
	"context"
	"time"

	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/dto/requests"
	"onterapi-service/internal/pkg/dto/responses"
)

// HoldConfirmationUsecase turns a pending hold into an appointment.
// Confirm is idempotent per idempotency key: a retry returns the already
// created appointment instead of failing or duplicating.
type HoldConfirmationUsecase interface {
	Confirm(ctx context.Context, request *requests.ConfirmHold) (*responses.HoldConfirmation, error)
}

// OverbookingReviewUsecase settles a pending_review overbooking flag.
type OverbookingReviewUsecase interface {
	Review(ctx context.Context, request *requests.OverbookingReview) (*models.Hold, error)
}

// HoldExpirer expires due pending holds. Implemented by the hold repository
// consumers and driven by the sweep worker.
type HoldExpirer interface {
	ExpireDueHolds(ctx context.Context, now time.Time, limit int) (int, error)
}
