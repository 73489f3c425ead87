package payments

import (
	"strings"

	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"
)

var asaasStatusToInternal = map[constvars.AsaasPaymentStatus]models.PaymentStatus{
	constvars.AsaasStatusReceived:                   models.PaymentStatusApproved,
	constvars.AsaasStatusReceivedInCash:             models.PaymentStatusApproved,
	constvars.AsaasStatusConfirmed:                  models.PaymentStatusApproved,
	constvars.AsaasStatusReceivedPartial:            models.PaymentStatusApproved,
	constvars.AsaasStatusPaidOver:                   models.PaymentStatusApproved,
	constvars.AsaasStatusReceivedInAdvance:          models.PaymentStatusSettled,
	constvars.AsaasStatusAnticipated:                models.PaymentStatusSettled,
	constvars.AsaasStatusSettled:                    models.PaymentStatusSettled,
	constvars.AsaasStatusRefunded:                   models.PaymentStatusRefunded,
	constvars.AsaasStatusChargebackRequested:        models.PaymentStatusChargeback,
	constvars.AsaasStatusChargebackDispute:          models.PaymentStatusChargeback,
	constvars.AsaasStatusAwaitingChargebackReversal: models.PaymentStatusChargeback,
}

var asaasFailureStatuses = map[constvars.AsaasPaymentStatus]struct{}{
	constvars.AsaasStatusOverdue:  {},
	constvars.AsaasStatusCanceled: {},
	constvars.AsaasStatusExpired:  {},
	constvars.AsaasStatusDeleted:  {},
}

var asaasEventToInternal = map[constvars.AsaasWebhookEvent]models.PaymentStatus{
	constvars.AsaasEventPaymentConfirmed:         models.PaymentStatusApproved,
	constvars.AsaasEventPaymentReceived:          models.PaymentStatusApproved,
	constvars.AsaasEventPaymentReceivedInCash:    models.PaymentStatusApproved,
	constvars.AsaasEventPaymentReceivedInAdvance: models.PaymentStatusSettled,
	constvars.AsaasEventPaymentAnticipated:       models.PaymentStatusSettled,
	constvars.AsaasEventPaymentChargeback:        models.PaymentStatusChargeback,
	constvars.AsaasEventPaymentRefunded:          models.PaymentStatusRefunded,
	constvars.AsaasEventPaymentOverdue:           models.PaymentStatusFailed,
	constvars.AsaasEventPaymentExpired:           models.PaymentStatusFailed,
	constvars.AsaasEventPaymentDeleted:           models.PaymentStatusFailed,
	constvars.AsaasEventPaymentCanceled:          models.PaymentStatusFailed,
}

// MapAsaasToInternalStatus resolves the internal payment status for a webhook
// delivery. The explicit status code wins; the known failure statuses
// (including the PENDING family) come next; the event name is the fallback
// for deliveries where Asaas omits or lags the status field.
func MapAsaasToInternalStatus(gatewayStatus, eventName string) (models.PaymentStatus, bool) {
	status := constvars.AsaasPaymentStatus(gatewayStatus)
	if internal, exists := asaasStatusToInternal[status]; exists {
		return internal, true
	}
	// Asaas reports dunning collection stages as DUNNING_REQUESTED,
	// DUNNING_RECEIVED and so on; the money was captured either way.
	if strings.HasPrefix(gatewayStatus, "DUNNING_") {
		return models.PaymentStatusApproved, true
	}
	if _, exists := asaasFailureStatuses[status]; exists {
		return models.PaymentStatusFailed, true
	}
	if strings.HasPrefix(gatewayStatus, string(constvars.AsaasStatusPending)) {
		return models.PaymentStatusFailed, true
	}
	if internal, exists := asaasEventToInternal[constvars.AsaasWebhookEvent(eventName)]; exists {
		return internal, true
	}
	return "", false
}

// paymentStatusRank orders internal statuses along the only path a payment
// may travel. Failed sits below approved so a late capture after an overdue
// notice still advances; refund and chargeback are the absorbing end states.
var paymentStatusRank = map[models.PaymentStatus]int{
	models.PaymentStatusFailed:     1,
	models.PaymentStatusApproved:   2,
	models.PaymentStatusSettled:    3,
	models.PaymentStatusRefunded:   4,
	models.PaymentStatusChargeback: 5,
}

// IsStatusAdvance reports whether next moves the payment forward from
// current. Gateway deliveries arrive duplicated and out of order, so equal
// or lower-ranked statuses are never written back.
func IsStatusAdvance(current, next models.PaymentStatus) bool {
	return paymentStatusRank[next] > paymentStatusRank[current]
}

// LifecycleKindForStatus picks the bus event kind for an internal status.
// Approved and failed transitions ride the generic status-changed kind.
func LifecycleKindForStatus(status models.PaymentStatus) models.PaymentEventKind {
	switch status {
	case models.PaymentStatusSettled:
		return models.PaymentEventSettled
	case models.PaymentStatusRefunded:
		return models.PaymentEventRefunded
	case models.PaymentStatusChargeback:
		return models.PaymentEventChargeback
	default:
		return models.PaymentEventStatusChanged
	}
}
