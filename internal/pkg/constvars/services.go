package constvars

const (
	MongoCollectionUsers         = "users"
	MongoCollectionProviders     = "providers"
	MongoCollectionConsultations = "consultations"
	MongoCollectionAppointments  = "appointments"
	MongoCollectionPayments      = "payments"
	MongoCollectionAuditTrails   = "appointment_audit_trails"
)

const (
	RedisKeyConsultationPaymentLock = "consultation-payment-lock:%s"
)
