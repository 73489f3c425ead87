package controllers

import (
	"context"
	"io"
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

type PaymentController struct {
	Log                   *zap.Logger
	PaymentWebhookUsecase contracts.PaymentWebhookUsecase
	LedgerUsecase         contracts.LedgerUsecase
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(
	logger *zap.Logger,
	paymentWebhookUsecase contracts.PaymentWebhookUsecase,
	ledgerUsecase contracts.LedgerUsecase,
) *PaymentController {
	oncePaymentController.Do(func() {
		paymentControllerInstance = &PaymentController{
			Log:                   logger,
			PaymentWebhookUsecase: paymentWebhookUsecase,
			LedgerUsecase:         ledgerUsecase,
		}
	})
	return paymentControllerInstance
}

// AsaasWebhook receives gateway deliveries. Once an event is durably
// recognized, duplicates still answer 200 so Asaas stops redelivering.
func (ctrl *PaymentController) AsaasWebhook(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	var payload requests.AsaasWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	request := &requests.PaymentWebhook{
		Provider:   constvars.PaymentProviderAsaas,
		ReceivedAt: time.Now().UTC(),
		Payload:    payload,
		RawBody:    body,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := ctrl.PaymentWebhookUsecase.Process(ctx, request); err != nil {
		ctrl.Log.Error("Failed to process gateway webhook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, payload.Event),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseWebhookAccepted, nil)
}

func (ctrl *PaymentController) GetLedger(w http.ResponseWriter, r *http.Request) {
	requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.LedgerUsecase.GetLedger(ctx, appointmentID)
	if err != nil {
		ctrl.Log.Error("Failed to retrieve payment ledger",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseLedgerRetrieved, response)
}
