package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingDataKey               = "data"
	LoggingRequestKey            = "request"
	LoggingResponseKey           = "response"
	LoggingTenantIDKey           = "tenant_id"
	LoggingClinicIDKey           = "clinic_id"
	LoggingHoldIDKey             = "hold_id"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingProfessionalIDKey     = "professional_id"
	LoggingTransactionIDKey      = "payment_transaction_id"
	LoggingPaymentStatusKey      = "payment_status"
	LoggingGatewayStatusKey      = "gateway_status"
	LoggingEventKey              = "event"
	LoggingFingerprintKey        = "fingerprint"
	LoggingProviderKey           = "provider"
	LoggingIdempotencyKey        = "idempotency_key"
	LoggingAmountCentsKey        = "amount_cents"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingQueueKey              = "queue"
	LoggingCountKey              = "count"
)
