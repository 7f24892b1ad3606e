package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_REQUESTER_EMAIL_KEY      ContextKey = "requester_email"
)

const (
	REQUEST_ID_PREFIX = "ZHR_SVC_"
)

const (
	HeaderXRequestID       = "X-Request-ID"
	HeaderAuthorization    = "Authorization"
	HeaderContentType      = "Content-Type"
	HeaderWebhookSignature = "X-Gateway-Signature"
)

const (
	MIMEApplicationJSON = "application/json"
)

const (
	DefaultCurrency           = "UGX"
	DefaultPhoneCountryPrefix = "+256"
	DefaultPlatformFeeRate    = "0.10"
)
