package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/app/delivery/http/controllers"
	"onterapi-service/internal/app/delivery/http/middlewares"
	"onterapi-service/internal/app/delivery/http/routers"
	"onterapi-service/internal/app/drivers/database"
	"onterapi-service/internal/app/drivers/logger"
	"onterapi-service/internal/app/drivers/messaging"
	"onterapi-service/internal/app/drivers/storage"
	"onterapi-service/internal/app/services/core/appointments"
	"onterapi-service/internal/app/services/core/clinics"
	"onterapi-service/internal/app/services/core/holds"
	"onterapi-service/internal/app/services/core/payments"
	"onterapi-service/internal/app/services/shared/archive"
	"onterapi-service/internal/app/services/shared/audit"
	"onterapi-service/internal/app/services/shared/eventbus"
	"onterapi-service/internal/app/services/shared/locker"
	"onterapi-service/internal/app/services/shared/notifier"
	"onterapi-service/internal/app/services/shared/ratelimiter"
	sharedredis "onterapi-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	minio "github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	if err := bootstrapTheApp(bootstrap, minioClient); err != nil {
		log.Fatalf("Failed to bootstrap application: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Failed to shutdown cleanly: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) error {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared infrastructure
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	auditSink := audit.NewMongoAuditSink(bootstrap.MongoDB, dbName, bootstrap.Logger)
	webhookArchive := archive.NewMinioWebhookArchive(minioClient, bootstrap.InternalConfig.Payments.ArchiveBucketName, bootstrap.Logger)
	paymentNotifier := notifier.NewLogNotifier(bootstrap.Logger)

	publisher, err := eventbus.NewPublisher(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.Payments.LifecycleQueue,
		bootstrap.InternalConfig.Payments.OverbookingQueue,
		bootstrap.InternalConfig.Payments.PayoutQueue,
	)
	if err != nil {
		return err
	}

	// Stores
	holdRepository := holds.NewHoldMongoRepository(bootstrap.MongoDB, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)
	clinicRepository := clinics.NewClinicMongoRepository(bootstrap.MongoDB, dbName)
	serviceTypeRepository := clinics.NewServiceTypeMongoRepository(bootstrap.MongoDB, dbName)
	clinicSettingsRepository := clinics.NewClinicSettingsMongoRepository(bootstrap.MongoDB, dbName)

	// Booking
	holdConfirmationUsecase := holds.NewHoldConfirmationUsecase(
		holdRepository,
		appointmentRepository,
		clinicRepository,
		serviceTypeRepository,
		auditSink,
		bootstrap.Logger,
	)
	overbookingReviewUsecase := holds.NewOverbookingReviewUsecase(
		holdRepository,
		auditSink,
		publisher,
		bootstrap.Logger,
	)
	holdExpirer := holds.NewHoldExpirer(
		holdRepository,
		auditSink,
		bootstrap.InternalConfig.Booking.HoldSweepWritesPerSecond,
		bootstrap.Logger,
	)
	expiryWorker := holds.NewExpiryWorker(holdExpirer, lockerService, bootstrap.InternalConfig, bootstrap.Logger)
	bootstrap.SweepWorkerStop = expiryWorker.Start(context.Background())

	// Payments
	paymentWebhookUsecase := payments.NewPaymentWebhookUsecase(
		appointmentRepository,
		holdRepository,
		auditSink,
		publisher,
		webhookArchive,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	reconciliationUsecase := payments.NewReconciliationUsecase(
		appointmentRepository,
		clinicSettingsRepository,
		auditSink,
		publisher,
		paymentNotifier,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	ledgerUsecase := appointments.NewLedgerUsecase(appointmentRepository, bootstrap.InternalConfig, bootstrap.Logger)

	consumer, err := eventbus.NewLifecycleConsumer(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.Payments.LifecycleQueue,
		reconciliationUsecase,
	)
	if err != nil {
		return err
	}
	consumerStop, err := consumer.Start(context.Background())
	if err != nil {
		return err
	}
	bootstrap.ConsumerStop = consumerStop

	// Delivery
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig, resourceLimiter)
	bookingController := controllers.NewBookingController(bootstrap.Logger, holdConfirmationUsecase, overbookingReviewUsecase)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentWebhookUsecase, ledgerUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, appMiddlewares, bookingController, paymentController)
	return nil
}
