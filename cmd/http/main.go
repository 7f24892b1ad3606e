package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zahara-service/internal/app/config"
	"zahara-service/internal/app/delivery/http/controllers"
	"zahara-service/internal/app/delivery/http/middlewares"
	"zahara-service/internal/app/delivery/http/routers"
	"zahara-service/internal/app/drivers/database"
	"zahara-service/internal/app/drivers/logger"
	"zahara-service/internal/app/drivers/messaging"
	"zahara-service/internal/app/services/core/appointments"
	"zahara-service/internal/app/services/core/consultations"
	"zahara-service/internal/app/services/core/payments"
	"zahara-service/internal/app/services/core/providers"
	"zahara-service/internal/app/services/core/users"
	"zahara-service/internal/app/services/shared/eventqueue"
	"zahara-service/internal/app/services/shared/locker"
	"zahara-service/internal/app/services/shared/payment_gateway"
	redisrepo "zahara-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQConnection(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		logrus.Printf("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that were already received by the server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) {
	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	gatewayService := payment_gateway.NewGatewayService(bootstrap.InternalConfig, bootstrap.Logger)

	eventQueueService, err := eventqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.App.EventQueueName)
	if err != nil {
		logrus.Fatalf("Failed to declare event queue: %v", err)
	}

	// Middlewares
	middlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}

	// Repositories
	dbName := bootstrap.DriverConfig.MongoDB.DbName
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	providerRepository := providers.NewProviderMongoRepository(bootstrap.MongoDB, dbName)
	consultationRepository := consultations.NewConsultationMongoRepository(bootstrap.MongoDB, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)
	auditTrailRepository := appointments.NewAuditTrailMongoRepository(bootstrap.MongoDB, dbName)
	paymentRepository, err := payments.NewPaymentMongoRepository(bootstrap.MongoDB, dbName)
	if err != nil {
		logrus.Fatalf("Failed to prepare payment repository: %v", err)
	}

	// Consultation
	consultationUsecase, err := consultations.NewConsultationUsecase(
		consultationRepository,
		userRepository,
		providerRepository,
		paymentRepository,
		gatewayService,
		lockerService,
		eventQueueService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	if err != nil {
		logrus.Fatalf("Failed to build consultation usecase: %v", err)
	}
	consultationController := controllers.NewConsultationController(bootstrap.Logger, consultationUsecase)

	// Appointment
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		auditTrailRepository,
		userRepository,
		providerRepository,
		bootstrap.Logger,
	)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)

	// Payment webhook
	paymentUsecase := payments.NewPaymentUsecase(
		paymentRepository,
		consultationRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	webhookController := controllers.NewWebhookController(bootstrap.Logger, paymentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		consultationController,
		appointmentController,
		webhookController,
	)
}
