package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingAdminIDKey        = "admin_id"
	LoggingDraftIDKey        = "draft_id"
	LoggingDraftKindKey      = "draft_kind"
	LoggingDraftStateKey     = "draft_state"
	LoggingResourceKey       = "resource"
	LoggingEntityIDKey       = "entity_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingOperationKey      = "operation"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingURLsKey           = "urls"
	LoggingFileCountKey      = "file_count"
	LoggingFieldKey          = "field"
	LoggingIndexKey          = "index"
	LoggingValidationErrsKey = "validation_errors"
	LoggingQueueKey          = "queue"
	LoggingCountKey          = "count"
)
