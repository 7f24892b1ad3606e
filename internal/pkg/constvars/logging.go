package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingUserIDKey         = "user_id"
	LoggingProviderIDKey     = "provider_id"
	LoggingConsultationIDKey = "consultation_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingPaymentIDKey      = "payment_id"
	LoggingPaymentMethodKey  = "payment_method"
	LoggingPaymentStatusKey  = "payment_status"
	LoggingTransactionRefKey = "transaction_ref"
	LoggingIdempotencyKeyKey = "idempotency_key"
	LoggingAuditActionKey    = "audit_action"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingQueueKey          = "queue"
	LoggingEventKindKey      = "event_kind"
)
