package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_PERFORMER_KEY            ContextKey = "performer"
	CONTEXT_TENANT_ID_KEY            ContextKey = "tenant_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "ONTP_SVC_"
)

const (
	ResourceBookingHolds = "bookings"
	ResourcePayments     = "payments"
)

// Audit event names recorded by the scheduling and billing flows.
const (
	AuditEventHoldConfirmed        = "booking.hold.confirmed"
	AuditEventHoldExpired          = "booking.hold.expired"
	AuditEventHoldCancelled        = "booking.hold.cancelled"
	AuditEventOverbookingReviewed  = "booking.hold.overbooking_reviewed"
	AuditEventPaymentStatusChanged = "payments.status_changed"
	AuditEventPaymentSettled       = "payments.settled"
	AuditEventPaymentRefunded      = "payments.refunded"
	AuditEventPaymentChargeback    = "payments.chargeback"
)

const (
	SettingsSectionPayments = "payments"
)

const (
	CancelReasonOverbookingRejected = "overbooking_rejected"
)

// Keys of the open metadata bag on appointments. Everything under
// MetadataKeyPaymentLedger is owned by the ledger codec.
const (
	MetadataKeyPaymentLedger  = "paymentLedger"
	MetadataKeyGateway        = "paymentGateway"
	MetadataKeyIdempotencyKey = "confirmationIdempotencyKey"
	MetadataKeyPaidAt         = "paidAt"
)
