package holds

import (
	"context"
	"testing"

	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/dto/requests"
	"onterapi-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func flaggedHold(id string) *models.Hold {
	hold := pendingHold(id)
	hold.Metadata.Overbooking = &models.OverbookingRecord{
		Status:    models.OverbookingPendingReview,
		RiskScore: 0.82,
		Threshold: 0.7,
		Reasons:   []string{"window_overlap"},
	}
	return hold
}

func reviewRequest(holdID string, approve bool) *requests.OverbookingReview {
	return &requests.OverbookingReview{
		HoldID:      holdID,
		ClinicID:    "clinic_1",
		TenantID:    "tenant_1",
		PerformedBy: "manager_1",
		Approve:     &approve,
	}
}

func newReviewUsecase(holdRepo *fakeHoldRepo, audit *fakeAuditSink, publisher *fakePublisher) *overbookingReviewUsecase {
	return &overbookingReviewUsecase{
		HoldRepository: holdRepo,
		AuditSink:      audit,
		EventPublisher: publisher,
		Log:            zap.NewNop(),
	}
}

func TestOverbookingReview(t *testing.T) {
	ctx := context.Background()

	t.Run("approval keeps the hold pending", func(t *testing.T) {
		hold := flaggedHold("hold_1")
		audit := &fakeAuditSink{}
		publisher := &fakePublisher{}
		usecase := newReviewUsecase(newFakeHoldRepo(hold), audit, publisher)

		reviewed, err := usecase.Review(ctx, reviewRequest("hold_1", true))
		require.NoError(t, err)

		assert.Equal(t, models.HoldStatusPending, reviewed.Status)
		require.NotNil(t, reviewed.Metadata.Overbooking)
		assert.Equal(t, models.OverbookingApproved, reviewed.Metadata.Overbooking.Status)
		assert.Equal(t, "manager_1", reviewed.Metadata.Overbooking.ReviewedBy)
		assert.NotNil(t, reviewed.Metadata.Overbooking.ReviewedAt)

		assert.Equal(t, 1, audit.countByEvent(constvars.AuditEventOverbookingReviewed))
		assert.Equal(t, 0, audit.countByEvent(constvars.AuditEventHoldCancelled))
		require.Len(t, publisher.overbookingEvents, 1)
		assert.Equal(t, models.OverbookingApproved, publisher.overbookingEvents[0].Status)
		assert.Equal(t, 0.82, publisher.overbookingEvents[0].RiskScore)
	})

	t.Run("rejection cancels the hold", func(t *testing.T) {
		hold := flaggedHold("hold_2")
		audit := &fakeAuditSink{}
		publisher := &fakePublisher{}
		usecase := newReviewUsecase(newFakeHoldRepo(hold), audit, publisher)

		request := reviewRequest("hold_2", false)
		request.Justification = "double booked on purpose"
		reviewed, err := usecase.Review(ctx, request)
		require.NoError(t, err)

		assert.Equal(t, models.HoldStatusCancelled, reviewed.Status)
		assert.Equal(t, "double booked on purpose", reviewed.CancelReason)
		assert.Equal(t, models.OverbookingRejected, reviewed.Metadata.Overbooking.Status)

		assert.Equal(t, 1, audit.countByEvent(constvars.AuditEventHoldCancelled))
		assert.Equal(t, 1, audit.countByEvent(constvars.AuditEventOverbookingReviewed))
		require.Len(t, publisher.overbookingEvents, 1)
		assert.Equal(t, models.OverbookingRejected, publisher.overbookingEvents[0].Status)
	})

	t.Run("rejection without justification uses the default reason", func(t *testing.T) {
		hold := flaggedHold("hold_3")
		usecase := newReviewUsecase(newFakeHoldRepo(hold), &fakeAuditSink{}, &fakePublisher{})

		reviewed, err := usecase.Review(ctx, reviewRequest("hold_3", false))
		require.NoError(t, err)
		assert.Equal(t, constvars.CancelReasonOverbookingRejected, reviewed.CancelReason)
	})

	t.Run("hold without a flag cannot be reviewed", func(t *testing.T) {
		hold := pendingHold("hold_4")
		usecase := newReviewUsecase(newFakeHoldRepo(hold), &fakeAuditSink{}, &fakePublisher{})

		_, err := usecase.Review(ctx, reviewRequest("hold_4", true))
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("already settled review cannot repeat", func(t *testing.T) {
		hold := flaggedHold("hold_5")
		hold.Metadata.Overbooking.Status = models.OverbookingApproved
		usecase := newReviewUsecase(newFakeHoldRepo(hold), &fakeAuditSink{}, &fakePublisher{})

		_, err := usecase.Review(ctx, reviewRequest("hold_5", false))
		require.Error(t, err)
	})

	t.Run("unknown hold is not found", func(t *testing.T) {
		usecase := newReviewUsecase(newFakeHoldRepo(), &fakeAuditSink{}, &fakePublisher{})

		_, err := usecase.Review(ctx, reviewRequest("hold_missing", true))
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}
