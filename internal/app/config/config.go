package config

import (
	"zahara-service/internal/pkg/constvars"
	"zahara-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "zahara"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			Timezone:        utils.GetEnvString("APP_TIMEZONE", "Africa/Kampala"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			EventQueueName:  utils.GetEnvString("APP_EVENT_QUEUE_NAME", "zahara_lifecycle_events_queue"),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Payment: Payment{
			Currency:             utils.GetEnvString("PAYMENT_CURRENCY", constvars.DefaultCurrency),
			PlatformFeeRate:      utils.GetEnvString("PAYMENT_PLATFORM_FEE_RATE", constvars.DefaultPlatformFeeRate),
			PhoneCountryPrefix:   utils.GetEnvString("PAYMENT_PHONE_COUNTRY_PREFIX", constvars.DefaultPhoneCountryPrefix),
			MinCardTokenLength:   utils.GetEnvInt("PAYMENT_MIN_CARD_TOKEN_LENGTH", 10),
			GatewayTimeoutSecs:   utils.GetEnvInt("PAYMENT_GATEWAY_TIMEOUT_SECONDS", 30),
			LockTTLSecs:          utils.GetEnvInt("PAYMENT_LOCK_TTL_SECONDS", 30),
			WebhookSigningSecret: utils.GetEnvString("PAYMENT_WEBHOOK_SIGNING_SECRET", ""),
		},
	}
}
