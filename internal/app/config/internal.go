package config

import "time"

const (
	AssetHostDriverMinio = "minio"
	AssetHostDriverHTTP  = "http"
)

type InternalConfig struct {
	App       App
	Gateway   Gateway
	AssetHost AssetHost
	JWT       JWT
	Draft     Draft
	Cache     Cache
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	EndpointPrefix             string
	AllowedOrigins             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	RequestBodyLimitInMegabyte int
}

// Gateway points at the remote Mr Chemist API.
type Gateway struct {
	BaseUrl                 string
	// ServiceToken authenticates background calls that have no admin request behind them.
	ServiceToken            string
	RequestTimeoutInSeconds int
	RequestsPerSecond       int
	Burst                   int
}

type AssetHost struct {
	// Driver selects between MinIO object storage and the HTTP upload/delete endpoints.
	Driver                  string
	BaseUrl                 string
	BucketName              string
	PublicBaseUrl           string
	MaxUploadSizeInMB       int
	RequestTimeoutInSeconds int
}

type JWT struct {
	Secret   string
	// Optional lets requests without a bearer token through as the anonymous admin.
	Optional bool
}

type Draft struct {
	TTL     time.Duration
	LockTTL time.Duration
}

type Cache struct {
	TreatmentTTL          time.Duration
	TreatmentCronSpec     string
	ListTTL               time.Duration
	NotificationTTL       time.Duration
	// BroadcastInvalidation publishes list invalidations to RabbitMQ for other replicas.
	BroadcastInvalidation bool
}
