package payments

import (
	"context"
	"sync"
	"time"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"
	"onterapi-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type reconciliationUsecase struct {
	AppointmentRepository    contracts.AppointmentRepository
	ClinicSettingsRepository contracts.ClinicSettingsRepository
	AuditSink                contracts.AuditSink
	PayoutRequester          contracts.PayoutRequester
	PaymentNotifier          contracts.PaymentNotifier
	InternalConfig           *config.InternalConfig
	Log                      *zap.Logger
}

var (
	reconciliationUsecaseInstance contracts.ReconciliationUsecase
	onceReconciliationUsecase     sync.Once
)

func NewReconciliationUsecase(
	appointmentRepository contracts.AppointmentRepository,
	clinicSettingsRepository contracts.ClinicSettingsRepository,
	auditSink contracts.AuditSink,
	payoutRequester contracts.PayoutRequester,
	paymentNotifier contracts.PaymentNotifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ReconciliationUsecase {
	onceReconciliationUsecase.Do(func() {
		reconciliationUsecaseInstance = &reconciliationUsecase{
			AppointmentRepository:    appointmentRepository,
			ClinicSettingsRepository: clinicSettingsRepository,
			AuditSink:                auditSink,
			PayoutRequester:          payoutRequester,
			PaymentNotifier:          paymentNotifier,
			InternalConfig:           internalConfig,
			Log:                      logger,
		}
	})
	return reconciliationUsecaseInstance
}

// Handle appends one lifecycle event to the appointment ledger. Deliveries
// are at-least-once, so everything here keys off the fingerprint: a replay of
// an already-appended event is a silent no-op.
func (uc *reconciliationUsecase) Handle(ctx context.Context, event *models.PaymentLifecycleEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, event.AppointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		// Expected under eventual consistency: the gateway can outrun the
		// confirmation flow. Redelivery must not fail the consumer.
		uc.Log.Warn("Lifecycle event references unknown appointment, skipping",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
			zap.String(constvars.LoggingEventKey, string(event.Kind)),
		)
		return nil
	}

	ledger, err := DecodeLedger(appointment.Metadata, uc.InternalConfig.Payments.DefaultCurrency)
	if err != nil {
		return err
	}

	ledgerType := ledgerEventTypeFor(event)
	if ledger.HasEvent(ledgerType, event.Fingerprint) {
		uc.Log.Info("Duplicate lifecycle event, skipping",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
			zap.String(constvars.LoggingFingerprintKey, event.Fingerprint),
		)
		return nil
	}

	switch event.Kind {
	case models.PaymentEventSettled:
		return uc.handleSettled(ctx, appointment, ledger, event)
	case models.PaymentEventRefunded:
		return uc.handleReversal(ctx, appointment, ledger, event, models.LedgerEventRefunded)
	case models.PaymentEventChargeback:
		return uc.handleReversal(ctx, appointment, ledger, event, models.LedgerEventChargeback)
	default:
		return uc.handleStatusChanged(ctx, appointment, ledger, event, ledgerType)
	}
}

func (uc *reconciliationUsecase) handleSettled(ctx context.Context, appointment *models.Appointment, ledger *models.PaymentLedger, event *models.PaymentLifecycleEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	value, netValue, resolved := resolveAmounts(event, appointment)
	if !resolved {
		uc.Log.Error("Settlement event has no resolvable amount, skipping",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingFingerprintKey, event.Fingerprint),
		)
		return nil
	}
	baseAmountCents := utils.RoundHalfEvenCents(value)

	settings, err := uc.ClinicSettingsRepository.FindLatestPaymentSettings(ctx, event.ClinicID)
	if err != nil {
		return err
	}
	if settings == nil {
		// Mandatory configuration: a clinic settling payments without split
		// rules is a deployment defect, so this bubbles to the consumer.
		return exceptions.ErrPaymentSettingsMissing(nil, event.ClinicID)
	}

	split := ComputeSplit(baseAmountCents, settings.SplitRules, uc.InternalConfig.Payments.SplitAdjustmentIterations)
	if split.RemainderCents != 0 {
		uc.Log.Warn("Split adjustment hit its cap, keeping residue on the settlement",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Int64(constvars.LoggingAmountCentsKey, split.RemainderCents),
		)
	}

	settledAt := event.OccurredAt
	if settledAt.IsZero() {
		settledAt = time.Now().UTC()
	}
	settlement := &models.Settlement{
		SettledAt:       settledAt,
		BaseAmountCents: baseAmountCents,
		Split:           split.Allocations,
		RemainderCents:  split.RemainderCents,
		Fingerprint:     event.Fingerprint,
		GatewayStatus:   event.GatewayStatus,
	}
	if netValue > 0 {
		netCents := utils.RoundHalfEvenCents(netValue)
		settlement.NetAmountCents = &netCents
	}

	ledger.Settlement = settlement
	uc.appendEvent(ledger, models.LedgerEventSettled, event)

	if err := uc.persistLedger(ctx, appointment.ID, ledger); err != nil {
		return err
	}

	uc.AuditSink.Register(ctx, &models.AuditEntry{
		TenantID:    appointment.TenantID,
		ClinicID:    appointment.ClinicID,
		Event:       constvars.AuditEventPaymentSettled,
		PerformedBy: event.EventName,
		Detail: map[string]interface{}{
			"appointmentId":   appointment.ID,
			"baseAmountCents": baseAmountCents,
			"remainderCents":  split.RemainderCents,
			"fingerprint":     event.Fingerprint,
		},
	})

	var gatewayContext map[string]interface{}
	if raw, exists := appointment.Metadata[constvars.MetadataKeyGateway]; exists {
		gatewayContext, _ = raw.(map[string]interface{})
	}
	payout := &contracts.PayoutRequest{
		TenantID:       appointment.TenantID,
		ClinicID:       appointment.ClinicID,
		AppointmentID:  appointment.ID,
		ProfessionalID: appointment.ProfessionalID,
		Settlement:     settlement,
		Gateway:        gatewayContext,
	}
	if err := uc.PayoutRequester.RequestPayout(ctx, payout); err != nil {
		// The ledger already carries this fingerprint, so a requeue would be
		// skipped as a duplicate. Payout recovery runs off the settlement
		// snapshot instead of the bus.
		uc.Log.Error("Payout request failed after settlement was recorded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}
	uc.notify(ctx, event)
	return nil
}

func (uc *reconciliationUsecase) handleReversal(ctx context.Context, appointment *models.Appointment, ledger *models.PaymentLedger, event *models.PaymentLifecycleEvent, ledgerType models.LedgerEventType) error {
	value, netValue, _ := resolveAmounts(event, appointment)

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	snapshot := &models.ReversalSnapshot{
		OccurredAt:    occurredAt,
		AmountCents:   utils.RoundHalfEvenCents(value),
		Fingerprint:   event.Fingerprint,
		GatewayStatus: event.GatewayStatus,
	}
	if netValue > 0 {
		netCents := utils.RoundHalfEvenCents(netValue)
		snapshot.NetAmountCents = &netCents
	}

	auditEvent := constvars.AuditEventPaymentRefunded
	if ledgerType == models.LedgerEventChargeback {
		ledger.Chargeback = snapshot
		auditEvent = constvars.AuditEventPaymentChargeback
	} else {
		ledger.Refund = snapshot
	}
	uc.appendEvent(ledger, ledgerType, event)

	if err := uc.persistLedger(ctx, appointment.ID, ledger); err != nil {
		return err
	}

	uc.AuditSink.Register(ctx, &models.AuditEntry{
		TenantID:    appointment.TenantID,
		ClinicID:    appointment.ClinicID,
		Event:       auditEvent,
		PerformedBy: event.EventName,
		Detail: map[string]interface{}{
			"appointmentId": appointment.ID,
			"amountCents":   snapshot.AmountCents,
			"fingerprint":   event.Fingerprint,
		},
	})
	uc.notify(ctx, event)
	return nil
}

func (uc *reconciliationUsecase) handleStatusChanged(ctx context.Context, appointment *models.Appointment, ledger *models.PaymentLedger, event *models.PaymentLifecycleEvent, ledgerType models.LedgerEventType) error {
	uc.appendEvent(ledger, ledgerType, event)
	return uc.persistLedger(ctx, appointment.ID, ledger)
}

func (uc *reconciliationUsecase) appendEvent(ledger *models.PaymentLedger, ledgerType models.LedgerEventType, event *models.PaymentLifecycleEvent) {
	ledger.Events = append(ledger.Events, models.LedgerEvent{
		Type:          ledgerType,
		GatewayStatus: event.GatewayStatus,
		EventName:     event.EventName,
		Fingerprint:   event.Fingerprint,
		Sandbox:       event.Sandbox,
		RecordedAt:    time.Now().UTC(),
		Metadata: map[string]interface{}{
			"previousStatus": string(event.PreviousStatus),
			"newStatus":      string(event.NewStatus),
		},
	})
	ledger.LastUpdatedAt = time.Now().UTC()
}

func (uc *reconciliationUsecase) persistLedger(ctx context.Context, appointmentID string, ledger *models.PaymentLedger) error {
	bag, err := EncodeLedger(ledger)
	if err != nil {
		return err
	}
	return uc.AppointmentRepository.PatchMetadata(ctx, appointmentID, map[string]interface{}{
		constvars.MetadataKeyPaymentLedger: bag,
	})
}

func (uc *reconciliationUsecase) notify(ctx context.Context, event *models.PaymentLifecycleEvent) {
	if err := uc.PaymentNotifier.NotifyPaymentEvent(ctx, event); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("Payment notification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
			zap.Error(err),
		)
	}
}

func ledgerEventTypeFor(event *models.PaymentLifecycleEvent) models.LedgerEventType {
	switch event.Kind {
	case models.PaymentEventSettled:
		return models.LedgerEventSettled
	case models.PaymentEventRefunded:
		return models.LedgerEventRefunded
	case models.PaymentEventChargeback:
		return models.LedgerEventChargeback
	default:
		if event.NewStatus == models.PaymentStatusFailed {
			return models.LedgerEventFailed
		}
		return models.LedgerEventStatusChanged
	}
}

// resolveAmounts prefers the figures carried on the event and falls back to
// the gateway snapshot already stored on the appointment.
func resolveAmounts(event *models.PaymentLifecycleEvent, appointment *models.Appointment) (float64, float64, bool) {
	if event.Amount != nil && event.Amount.Value > 0 {
		return event.Amount.Value, event.Amount.NetValue, true
	}

	raw, exists := appointment.Metadata[constvars.MetadataKeyGateway]
	if !exists {
		return 0, 0, false
	}
	gateway, valid := raw.(map[string]interface{})
	if !valid {
		return 0, 0, false
	}
	value, hasValue := toFloat(gateway["value"])
	if !hasValue || value <= 0 {
		return 0, 0, false
	}
	netValue, _ := toFloat(gateway["netValue"])
	return value, netValue, true
}

func toFloat(raw interface{}) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int:
		return float64(typed), true
	default:
		return 0, false
	}
}
