package config

type DriverConfig struct {
	MongoDB  MongoDB
	Redis    Redis
	RabbitMQ RabbitMQ
	Logger   Logger
}

type MongoDB struct {
	Host     string
	Port     string
	DbName   string
	Username string
	Password string
}

type Redis struct {
	Host     string
	Port     string
	Password string
}

type RabbitMQ struct {
	Host     string
	Port     string
	Username string
	Password string
}

type Logger struct {
	Level               string
	OutputFileName      string
	OutputErrorFileName string
}

type InternalConfig struct {
	App     App
	JWT     JWT
	Payment Payment
}

type App struct {
	Env             string
	Port            string
	Version         string
	EndpointPrefix  string
	Timezone        string
	MaxRequests     int
	ShutdownTimeout int
	EventQueueName  string
}

type JWT struct {
	Secret string
}

type Payment struct {
	Currency             string
	PlatformFeeRate      string
	PhoneCountryPrefix   string
	MinCardTokenLength   int
	GatewayTimeoutSecs   int
	LockTTLSecs          int
	WebhookSigningSecret string
}
