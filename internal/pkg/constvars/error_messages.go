package constvars

// Validation messages mapper, keyed by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"uuid":     "must be a valid UUID",
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
	ErrClientUserNotFound                  = "user not found"
	ErrClientProviderNotFound              = "provider not found"
	ErrClientConsultationNotFound          = "consultation not found"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientPaymentNotFound               = "payment not found"
	ErrClientNotResourceOwner              = "you don't have access to this consultation"
	ErrClientInvalidStateTransition        = "this action is not allowed in the current status"
	ErrClientPaymentInProgress             = "another payment for this consultation is in progress, please retry shortly"
	ErrClientInvalidWebhookSignature       = "invalid webhook signature"
	ErrClientScheduledAtNotFuture          = "scheduled time must be in the future"
)

// Error messages for developers
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON"
	ErrDevCannotMarshalJSON          = "cannot marshal JSON"
	ErrDevValidationFailed           = "request validation failed"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevAuthTokenMissing           = "authorization token missing"
	ErrDevAuthTokenInvalid           = "authorization token invalid or expired"
	ErrDevAuthSigningMethod          = "unexpected jwt signing method"
	ErrDevAuthEmailClaimMissing      = "email claim missing from token"
	ErrDevUserNotExists              = "user does not exist"
	ErrDevProviderNotExists          = "provider does not exist"
	ErrDevConsultationNotExists      = "consultation does not exist"
	ErrDevAppointmentNotExists       = "appointment does not exist"
	ErrDevPaymentNotExists           = "payment does not exist"
	ErrDevNotResourceOwner           = "requester is not the owner of the resource"
	ErrDevInvalidStateTransition     = "state transition not permitted from current status"
	ErrDevPaymentLockNotAcquired     = "payment lock for consultation not acquired"
	ErrDevDuplicateIdempotencyKey    = "payment with the same idempotency key already exists"
	ErrDevInvalidWebhookSignature    = "webhook signature verification failed"
	ErrDevMongoDBFailedInsert        = "mongodb failed to insert document"
	ErrDevMongoDBFailedFind          = "mongodb failed to find document"
	ErrDevMongoDBFailedUpdate        = "mongodb failed to update document"
	ErrDevMongoDBFailedCreateIndex   = "mongodb failed to create index"
	ErrDevMongoDBNotObjectID         = "value is not a valid mongodb object id"
	ErrDevRedisFailedSet             = "redis failed to set key"
	ErrDevRedisFailedGet             = "redis failed to get key"
	ErrDevRedisFailedDelete          = "redis failed to delete key"
	ErrDevRedisFailedUnlock          = "redis failed to release lock"
	ErrDevQueueFailedPublish         = "failed to publish message to queue"
	ErrDevQueueFailedConfirm         = "queue publish not confirmed by broker"
	ErrDevGatewayNilInput            = "payment gateway called with nil input"
	ErrDevScheduledAtNotFuture       = "scheduled_at is not a future datetime"
)
