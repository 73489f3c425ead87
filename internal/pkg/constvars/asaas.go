package constvars

const (
	PaymentProviderAsaas = "asaas"
)

// AsaasPaymentStatus is a typed payment status returned by Asaas.
type AsaasPaymentStatus string

const (
	AsaasStatusPending                    AsaasPaymentStatus = "PENDING"
	AsaasStatusReceived                   AsaasPaymentStatus = "RECEIVED"
	AsaasStatusReceivedInCash             AsaasPaymentStatus = "RECEIVED_IN_CASH"
	AsaasStatusReceivedInAdvance          AsaasPaymentStatus = "RECEIVED_IN_ADVANCE"
	AsaasStatusReceivedPartial            AsaasPaymentStatus = "RECEIVED_PARTIAL"
	AsaasStatusConfirmed                  AsaasPaymentStatus = "CONFIRMED"
	AsaasStatusPaidOver                   AsaasPaymentStatus = "PAID_OVER"
	AsaasStatusAnticipated                AsaasPaymentStatus = "ANTECIPATED"
	AsaasStatusSettled                    AsaasPaymentStatus = "SETTLED"
	AsaasStatusRefunded                   AsaasPaymentStatus = "REFUNDED"
	AsaasStatusChargebackRequested        AsaasPaymentStatus = "CHARGEBACK_REQUESTED"
	AsaasStatusChargebackDispute          AsaasPaymentStatus = "CHARGEBACK_DISPUTE"
	AsaasStatusAwaitingChargebackReversal AsaasPaymentStatus = "AWAITING_CHARGEBACK_REVERSAL"
	AsaasStatusOverdue                    AsaasPaymentStatus = "OVERDUE"
	AsaasStatusCanceled                   AsaasPaymentStatus = "CANCELED"
	AsaasStatusExpired                    AsaasPaymentStatus = "EXPIRED"
	AsaasStatusDeleted                    AsaasPaymentStatus = "DELETED"
)

// AsaasWebhookEvent is the event name carried on an Asaas webhook envelope.
type AsaasWebhookEvent string

const (
	AsaasEventPaymentConfirmed         AsaasWebhookEvent = "PAYMENT_CONFIRMED"
	AsaasEventPaymentReceived          AsaasWebhookEvent = "PAYMENT_RECEIVED"
	AsaasEventPaymentReceivedInCash    AsaasWebhookEvent = "PAYMENT_RECEIVED_IN_CASH"
	AsaasEventPaymentReceivedInAdvance AsaasWebhookEvent = "PAYMENT_RECEIVED_IN_ADVANCE"
	AsaasEventPaymentAnticipated       AsaasWebhookEvent = "PAYMENT_ANTICIPATED"
	AsaasEventPaymentChargeback        AsaasWebhookEvent = "PAYMENT_CHARGEBACK"
	AsaasEventPaymentRefunded          AsaasWebhookEvent = "PAYMENT_REFUNDED"
	AsaasEventPaymentOverdue           AsaasWebhookEvent = "PAYMENT_OVERDUE"
	AsaasEventPaymentExpired           AsaasWebhookEvent = "PAYMENT_EXPIRED"
	AsaasEventPaymentDeleted           AsaasWebhookEvent = "PAYMENT_DELETED"
	AsaasEventPaymentCanceled          AsaasWebhookEvent = "PAYMENT_CANCELED"
)
