package config

import (
	"time"

	"mrchemist-admin-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", "8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvString("APP_ALLOWED_ORIGINS", "*"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 20),
		},
		Gateway: Gateway{
			BaseUrl:                 utils.GetEnvString("GATEWAY_BASE_URL", "http://localhost:4000/api"),
			ServiceToken:            utils.GetEnvString("GATEWAY_SERVICE_TOKEN", ""),
			RequestTimeoutInSeconds: utils.GetEnvInt("GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 15),
			RequestsPerSecond:       utils.GetEnvInt("GATEWAY_REQUESTS_PER_SECOND", 20),
			Burst:                   utils.GetEnvInt("GATEWAY_BURST", 40),
		},
		AssetHost: AssetHost{
			Driver:                  utils.GetEnvString("ASSET_HOST_DRIVER", AssetHostDriverMinio),
			BaseUrl:                 utils.GetEnvString("ASSET_HOST_BASE_URL", "http://localhost:3000/api/cloudinary"),
			BucketName:              utils.GetEnvString("ASSET_HOST_BUCKET_NAME", "mrchemist-assets"),
			PublicBaseUrl:           utils.GetEnvString("ASSET_HOST_PUBLIC_BASE_URL", "http://localhost:9000"),
			MaxUploadSizeInMB:       utils.GetEnvInt("ASSET_HOST_MAX_UPLOAD_SIZE_IN_MB", 5),
			RequestTimeoutInSeconds: utils.GetEnvInt("ASSET_HOST_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		JWT: JWT{
			Secret:   utils.GetEnvString("JWT_SECRET", "anyjwt"),
			Optional: utils.GetEnvBool("JWT_OPTIONAL", false),
		},
		Draft: Draft{
			TTL:     utils.GetEnvDuration("DRAFT_TTL", 24*time.Hour),
			LockTTL: utils.GetEnvDuration("DRAFT_LOCK_TTL", 30*time.Second),
		},
		Cache: Cache{
			TreatmentTTL:          utils.GetEnvDuration("CACHE_TREATMENT_TTL", 10*time.Minute),
			TreatmentCronSpec:     utils.GetEnvString("CACHE_TREATMENT_REFRESH_CRON_SPEC", "@every 5m"),
			ListTTL:               utils.GetEnvDuration("CACHE_LIST_TTL", time.Minute),
			NotificationTTL:       utils.GetEnvDuration("CACHE_NOTIFICATION_TTL", time.Hour),
			BroadcastInvalidation: utils.GetEnvBool("CACHE_BROADCAST_INVALIDATION", true),
		},
	}
}
