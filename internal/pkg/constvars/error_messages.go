package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"uuid":     "must be a valid UUID",
	"datetime": "must be a valid timestamp",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientClinicNotFound                = "clinic not found"
	ErrClientHoldNotFound                  = "booking hold not found"
	ErrClientServiceTypeNotFound           = "service type not found"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientPaymentRecordNotFound         = "payment record not found"
	ErrClientHoldAlreadyExists             = "the professional already has a booking for this time"
	ErrClientHoldConfirmationNotAllowed    = "this booking hold can no longer be confirmed"
	ErrClientOverbookingReviewNotAllowed   = "this booking hold is not awaiting overbooking review"
	ErrClientPaymentWebhookInvalid         = "the payment notification could not be processed"
	ErrClientPaymentProviderNotSupported   = "payment provider is not supported"
)

// Error messages for developers
const (
	ErrDevInvalidInput      = "invalid input"
	ErrDevValidationFailed  = "validation failed"
	ErrDevCannotParseJSON   = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseTime   = "cannot parse time into the given format"

	ErrDevClinicNotFound          = "clinic not found for tenant"
	ErrDevHoldNotFound            = "booking hold not found or tenant/clinic mismatch"
	ErrDevServiceTypeNotFound     = "service type not found for clinic"
	ErrDevAppointmentNotFound     = "appointment not found"
	ErrDevPaymentRecordNotFound   = "no appointment found for payment transaction id"
	ErrDevHoldOverlap             = "overlapping hold or appointment for professional in window"
	ErrDevHoldTerminalStatus      = "hold is in a terminal status"
	ErrDevHoldExpired             = "hold ttl or start time already passed"
	ErrDevHoldIdempotencyMismatch = "idempotency key does not match stored confirmation"
	ErrDevMinAdvanceViolated      = "minimum advance window before start not satisfied"
	ErrDevMissingTransactionID    = "payment transaction id is empty"
	ErrDevOverbookingNotPending   = "overbooking record missing or not pending review"
	ErrDevWebhookMissingPaymentID = "webhook payload has no payment id"
	ErrDevWebhookUnknownStatus    = "gateway status and event do not map to an internal status"
	ErrDevProviderNotSupported    = "unsupported payment provider"
	ErrDevPaymentSettingsMissing  = "payment settings not configured for clinic"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document from database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	// Redis messages
	ErrDevRedisGetData        = "failed to get data from redis"
	ErrDevRedisSetData        = "failed to set data into redis"
	ErrDevRedisDeleteData     = "failed to delete data from redis"
	ErrDevRedisIncrementValue = "failed to increment value in redis"
	ErrDevRedisGetNoData      = "no data found in redis for key %s"

	// RabbitMQ messages
	ErrDevRabbitMQPublish = "failed to publish message to queue %s"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object in bucket %s"

	// Server messages
	ErrDevServerDeadlineExceeded = "deadline exceeded"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevWebhookTokenInvalid       = "webhook access token mismatch"
)

const (
	ResponseUnknown = "unknown"
)
