package config

import (
	"onterapi-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "onterapi"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
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
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "America/Sao_Paulo"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/v1"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeout:            utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
		},
		Booking: Booking{
			HoldSweepIntervalInSeconds: utils.GetEnvInt("BOOKING_HOLD_SWEEP_INTERVAL_IN_SECONDS", 60),
			HoldSweepBatchSize:         utils.GetEnvInt("BOOKING_HOLD_SWEEP_BATCH_SIZE", 200),
			HoldSweepWritesPerSecond:   utils.GetEnvInt("BOOKING_HOLD_SWEEP_WRITES_PER_SECOND", 50),
		},
		Payments: Payments{
			WebhookAccessToken:        utils.GetEnvString("PAYMENTS_WEBHOOK_ACCESS_TOKEN", ""),
			WebhookMaxPerMinute:       utils.GetEnvInt("PAYMENTS_WEBHOOK_MAX_PER_MINUTE", 120),
			LifecycleQueue:            utils.GetEnvString("PAYMENTS_LIFECYCLE_QUEUE", "payment_lifecycle_events"),
			OverbookingQueue:          utils.GetEnvString("PAYMENTS_OVERBOOKING_QUEUE", "overbooking_reviewed_events"),
			PayoutQueue:               utils.GetEnvString("PAYMENTS_PAYOUT_QUEUE", "payout_requests"),
			ArchiveBucketName:         utils.GetEnvString("PAYMENTS_ARCHIVE_BUCKET_NAME", "gateway-webhooks"),
			DefaultCurrency:           utils.GetEnvString("PAYMENTS_DEFAULT_CURRENCY", "BRL"),
			SplitAdjustmentIterations: utils.GetEnvInt("PAYMENTS_SPLIT_ADJUSTMENT_ITERATIONS", 1000),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
	}
}
