package payments

import (
	"context"
	"sync"
	"time"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/dto/requests"
	"onterapi-service/internal/pkg/exceptions"
	"onterapi-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type paymentWebhookUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	HoldRepository        contracts.HoldRepository
	AuditSink             contracts.AuditSink
	EventPublisher        contracts.EventPublisher
	WebhookArchive        contracts.WebhookArchive
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	paymentWebhookUsecaseInstance contracts.PaymentWebhookUsecase
	oncePaymentWebhookUsecase     sync.Once
)

func NewPaymentWebhookUsecase(
	appointmentRepository contracts.AppointmentRepository,
	holdRepository contracts.HoldRepository,
	auditSink contracts.AuditSink,
	eventPublisher contracts.EventPublisher,
	webhookArchive contracts.WebhookArchive,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentWebhookUsecase {
	oncePaymentWebhookUsecase.Do(func() {
		paymentWebhookUsecaseInstance = &paymentWebhookUsecase{
			AppointmentRepository: appointmentRepository,
			HoldRepository:        holdRepository,
			AuditSink:             auditSink,
			EventPublisher:        eventPublisher,
			WebhookArchive:        webhookArchive,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return paymentWebhookUsecaseInstance
}

// Process applies one gateway delivery to the appointment and its hold. Every
// write is re-entrant, so a redelivery after a partial failure converges on
// the same final state.
func (uc *paymentWebhookUsecase) Process(ctx context.Context, request *requests.PaymentWebhook) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("Processing payment webhook",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingProviderKey, request.Provider),
		zap.String(constvars.LoggingEventKey, request.Payload.Event),
	)

	if request.Provider != constvars.PaymentProviderAsaas {
		return exceptions.ErrPaymentProviderNotSupported(request.Provider)
	}

	payment := request.Payload.Payment
	if payment == nil || payment.ID == "" {
		return exceptions.ErrPaymentWebhookInvalid(nil, constvars.ErrDevWebhookMissingPaymentID)
	}

	newStatus, mapped := MapAsaasToInternalStatus(payment.Status, request.Payload.Event)
	if !mapped {
		uc.Log.Warn("Webhook carries unmappable gateway status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingGatewayStatusKey, payment.Status),
			zap.String(constvars.LoggingEventKey, request.Payload.Event),
		)
		return exceptions.ErrPaymentWebhookInvalid(nil, constvars.ErrDevWebhookUnknownStatus)
	}

	appointment, err := uc.AppointmentRepository.FindByPaymentTransactionID(ctx, payment.ID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return exceptions.ErrPaymentRecordNotFound(nil)
	}

	paidAt := request.ReceivedAt
	if parsed, parseable := utils.ParseGatewayDate(payment.PaymentDate); parseable {
		paidAt = parsed
	} else if parsed, parseable := utils.ParseGatewayDate(payment.ClientPaymentDate); parseable {
		paidAt = parsed
	}

	if len(request.RawBody) > 0 {
		if _, archiveErr := uc.WebhookArchive.StorePayload(ctx, request.Provider, payment.ID, request.RawBody); archiveErr != nil {
			uc.Log.Error("Failed to archive webhook payload",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingTransactionIDKey, payment.ID),
				zap.Error(archiveErr),
			)
		}
	}

	previousStatus := appointment.PaymentStatus
	if !IsStatusAdvance(previousStatus, newStatus) {
		// Duplicate or out-of-order delivery. The raw payload is archived
		// above; the status, its mirror and the gateway snapshot keep the
		// newer state they already carry.
		uc.Log.Info("Ignoring gateway status that does not advance the payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingPaymentStatusKey, string(previousStatus)),
			zap.String(constvars.LoggingGatewayStatusKey, payment.Status),
		)
		return nil
	}

	patch := map[string]interface{}{
		constvars.MetadataKeyGateway: map[string]interface{}{
			"provider":    request.Provider,
			"id":          payment.ID,
			"status":      payment.Status,
			"event":       request.Payload.Event,
			"dueDate":     payment.DueDate,
			"paymentDate": payment.PaymentDate,
			"customer":    payment.Customer,
			"billingType": payment.BillingType,
			"value":       payment.Value,
			"netValue":    payment.NetValue,
			"sandbox":     request.Payload.Sandbox,
			"receivedAt":  request.ReceivedAt.UTC().Format(time.RFC3339),
		},
		constvars.MetadataKeyPaidAt: paidAt.UTC().Format(time.RFC3339),
	}

	if err := uc.AppointmentRepository.UpdatePaymentStatus(ctx, appointment.ID, newStatus); err != nil {
		return err
	}
	if err := uc.AppointmentRepository.PatchMetadata(ctx, appointment.ID, patch); err != nil {
		return err
	}

	if appointment.HoldID != "" {
		if err := uc.HoldRepository.UpdatePaymentStatus(ctx, appointment.HoldID, newStatus); err != nil {
			return err
		}
	}

	uc.AuditSink.Register(ctx, &models.AuditEntry{
		TenantID:    appointment.TenantID,
		ClinicID:    appointment.ClinicID,
		Event:       constvars.AuditEventPaymentStatusChanged,
		PerformedBy: request.Provider,
		Detail: map[string]interface{}{
			"appointmentId":  appointment.ID,
			"transactionId":  payment.ID,
			"previousStatus": previousStatus,
			"newStatus":      newStatus,
			"gatewayStatus":  payment.Status,
			"event":          request.Payload.Event,
		},
	})

	event := &models.PaymentLifecycleEvent{
		Kind:           LifecycleKindForStatus(newStatus),
		TenantID:       appointment.TenantID,
		ClinicID:       appointment.ClinicID,
		AppointmentID:  appointment.ID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		GatewayStatus:  payment.Status,
		EventName:      request.Payload.Event,
		Fingerprint:    request.Payload.ID,
		Sandbox:        request.Payload.Sandbox,
		Amount:         &models.PaymentAmountSnapshot{Value: payment.Value, NetValue: payment.NetValue},
		OccurredAt:     paidAt.UTC(),
	}
	if err := uc.EventPublisher.PublishPaymentLifecycle(ctx, event); err != nil {
		return err
	}

	uc.Log.Info("Payment webhook processed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingTransactionIDKey, payment.ID),
		zap.String(constvars.LoggingPaymentStatusKey, string(newStatus)),
	)
	return nil
}
