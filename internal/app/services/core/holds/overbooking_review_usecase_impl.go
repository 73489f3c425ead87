package holds

import (
	"context"
	"sync"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/dto/requests"
	"onterapi-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type overbookingReviewUsecase struct {
	HoldRepository contracts.HoldRepository
	AuditSink      contracts.AuditSink
	EventPublisher contracts.EventPublisher
	Log            *zap.Logger
}

var (
	overbookingReviewUsecaseInstance contracts.OverbookingReviewUsecase
	onceOverbookingReviewUsecase     sync.Once
)

func NewOverbookingReviewUsecase(
	holdRepository contracts.HoldRepository,
	auditSink contracts.AuditSink,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.OverbookingReviewUsecase {
	onceOverbookingReviewUsecase.Do(func() {
		overbookingReviewUsecaseInstance = &overbookingReviewUsecase{
			HoldRepository: holdRepository,
			AuditSink:      auditSink,
			EventPublisher: eventPublisher,
			Log:            logger,
		}
	})
	return overbookingReviewUsecaseInstance
}

// Review settles a pending_review overbooking flag. Approval leaves the hold
// pending for the normal confirmation flow; rejection cancels it. Both
// outcomes publish the same event shape.
func (uc *overbookingReviewUsecase) Review(ctx context.Context, request *requests.OverbookingReview) (*models.Hold, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	hold, err := uc.HoldRepository.FindByID(ctx, request.TenantID, request.HoldID)
	if err != nil {
		return nil, err
	}
	if hold == nil || hold.ClinicID != request.ClinicID {
		return nil, exceptions.ErrHoldNotFound(nil)
	}

	overbooking := hold.Metadata.Overbooking
	if overbooking == nil || overbooking.Status != models.OverbookingPendingReview {
		return nil, exceptions.ErrOverbookingReviewNotAllowed(nil)
	}

	approve := request.Approve != nil && *request.Approve
	reviewedAt := time.Now().UTC()

	decision := models.OverbookingRejected
	if approve {
		decision = models.OverbookingApproved
	}
	overbooking.Status = decision
	overbooking.ReviewedBy = request.PerformedBy
	overbooking.Justification = request.Justification
	overbooking.ReviewedAt = &reviewedAt

	reviewed, err := uc.HoldRepository.PatchMetadata(ctx, hold.ID, hold.Metadata)
	if err != nil {
		return nil, err
	}
	if reviewed == nil {
		return nil, exceptions.ErrHoldNotFound(nil)
	}

	if !approve {
		reason := request.Justification
		if reason == "" {
			reason = constvars.CancelReasonOverbookingRejected
		}
		cancelled, err := uc.HoldRepository.UpdateStatus(ctx, hold.ID, models.HoldStatusPending, models.HoldStatusCancelled, &models.Hold{
			CancelReason:   reason,
			LastModifiedBy: request.PerformedBy,
		})
		if err != nil {
			return nil, err
		}
		if cancelled != nil {
			reviewed = cancelled
		} else {
			uc.Log.Warn("Hold left pending state before rejection could cancel it",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingHoldIDKey, hold.ID),
			)
		}
		uc.AuditSink.Register(ctx, &models.AuditEntry{
			TenantID:    hold.TenantID,
			ClinicID:    hold.ClinicID,
			Event:       constvars.AuditEventHoldCancelled,
			PerformedBy: request.PerformedBy,
			Detail: map[string]interface{}{
				"holdId": hold.ID,
				"reason": reason,
			},
		})
	}

	uc.AuditSink.Register(ctx, &models.AuditEntry{
		TenantID:    hold.TenantID,
		ClinicID:    hold.ClinicID,
		Event:       constvars.AuditEventOverbookingReviewed,
		PerformedBy: request.PerformedBy,
		Detail: map[string]interface{}{
			"holdId":        hold.ID,
			"decision":      decision,
			"riskScore":     overbooking.RiskScore,
			"justification": request.Justification,
		},
	})

	event := &models.OverbookingReviewedEvent{
		TenantID:      hold.TenantID,
		ClinicID:      hold.ClinicID,
		HoldID:        hold.ID,
		Status:        decision,
		RiskScore:     overbooking.RiskScore,
		Threshold:     overbooking.Threshold,
		Reasons:       overbooking.Reasons,
		Context:       overbooking.Context,
		ReviewedBy:    request.PerformedBy,
		Justification: request.Justification,
		ReviewedAt:    reviewedAt,
	}
	if err := uc.EventPublisher.PublishOverbookingReviewed(ctx, event); err != nil {
		return nil, err
	}

	uc.Log.Info("Overbooking review recorded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingHoldIDKey, hold.ID),
		zap.String(constvars.LoggingEventKey, string(decision)),
	)
	return reviewed, nil
}
