package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/dto/requests"
	"onterapi-service/internal/pkg/exceptions"
	"onterapi-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log                      *zap.Logger
	HoldConfirmationUsecase  contracts.HoldConfirmationUsecase
	OverbookingReviewUsecase contracts.OverbookingReviewUsecase
}

var (
	bookingControllerInstance *BookingController
	onceBookingController     sync.Once
)

func NewBookingController(
	logger *zap.Logger,
	holdConfirmationUsecase contracts.HoldConfirmationUsecase,
	overbookingReviewUsecase contracts.OverbookingReviewUsecase,
) *BookingController {
	onceBookingController.Do(func() {
		bookingControllerInstance = &BookingController{
			Log:                      logger,
			HoldConfirmationUsecase:  holdConfirmationUsecase,
			OverbookingReviewUsecase: overbookingReviewUsecase,
		}
	})
	return bookingControllerInstance
}

func (ctrl *BookingController) ConfirmHold(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	request := new(requests.ConfirmHold)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.HoldID = chi.URLParam(r, constvars.URLParamHoldID)
	if tenantID, ok := r.Context().Value(constvars.CONTEXT_TENANT_ID_KEY).(string); ok && tenantID != "" {
		request.TenantID = tenantID
	}
	if performer, ok := r.Context().Value(constvars.CONTEXT_PERFORMER_KEY).(string); ok && performer != "" {
		request.ConfirmedBy = performer
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.HoldConfirmationUsecase.Confirm(ctx, request)
	if err != nil {
		ctrl.Log.Error("Failed to confirm booking hold",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingHoldIDKey, request.HoldID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseHoldConfirmed, response)
}

func (ctrl *BookingController) ReviewOverbooking(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	request := new(requests.OverbookingReview)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.HoldID = chi.URLParam(r, constvars.URLParamHoldID)
	if tenantID, ok := r.Context().Value(constvars.CONTEXT_TENANT_ID_KEY).(string); ok && tenantID != "" {
		request.TenantID = tenantID
	}
	if performer, ok := r.Context().Value(constvars.CONTEXT_PERFORMER_KEY).(string); ok && performer != "" {
		request.PerformedBy = performer
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	hold, err := ctrl.OverbookingReviewUsecase.Review(ctx, request)
	if err != nil {
		ctrl.Log.Error("Failed to review overbooking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingHoldIDKey, request.HoldID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseOverbookingReviewed, hold)
}
