package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s",
	"max":           "must be at most %s",
	"len":           "must be %s characters long",
	"oneof":         "must be one of [%s]",
	"gt":            "must be greater than %s",
	"gte":           "must be greater than or equal to %s",
	"lt":            "must be less than %s",
	"lte":           "must be less than or equal to %s",
	"url":           "must be a valid URL",
	"email":         "must be a valid email address",
	"slug":          "can only contain lowercase letters, numbers, and hyphens",
	"question_type": "must be one of [yesNo, text, textarea, checkbox, radio, select, date, number, checkboxGroup]",
	"variant_type":  "must be one of [weight, volume, unit, pack]",
	"json":          "must be valid JSON",
	"treatment_ref": "must reference an existing treatment",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientDraftNotFound                 = "draft not found or already expired"
	ErrClientEntityNotFound                = "the requested item could not be found"
	ErrClientDraftBusy                     = "the draft is being saved, please wait"
	ErrClientDraftClosed                   = "the draft was already submitted"
	ErrClientValidationFailed              = "please fix the highlighted fields"
	ErrClientIndexOutOfRange               = "the selected item no longer exists"
	ErrClientUploadFailed                  = "Image upload failed"
	ErrClientImageCleanupFailed            = "Some images couldn't be deleted from storage"
	ErrClientUnknownArrayField             = "the selected list cannot be edited"
	ErrClientUnknownResource               = "the selected resource is not available"
	ErrClientFileTooLarge                  = "Image is too large"
	ErrClientMissingFile                   = "please attach the required file"
	ErrClientPasswordOnEdit                = "the password can only be set when creating a user"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevValidationFailed         = "validation failed"
	ErrDevCannotParseJSON          = "cannot parse JSON"
	ErrDevCannotMarshalJSON        = "cannot marshal JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form"
	ErrDevReadBody                 = "cannot read body"
	ErrDevURLParamValidationFailed = "url param %s validation failed"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevServerProcess            = "server process failed"
	ErrDevAuthTokenMissing         = "authorization token missing"
	ErrDevAuthTokenInvalid         = "authorization token invalid"
	ErrDevAuthSigningMethod        = "unexpected token signing method"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevGatewayRequestFailed     = "gateway %s %s failed"
	ErrDevGatewayNotFound          = "gateway %s not found"
	ErrDevGatewayDecodeResponse    = "failed to decode gateway response for %s"
	ErrDevAssetUpload              = "failed to upload asset %s"
	ErrDevAssetDelete              = "failed to delete assets"
	ErrDevMinioCreateObject        = "failed to create object in bucket %s"
	ErrDevMinioRemoveObject        = "failed to remove object from bucket %s"
	ErrDevDraftNotFound            = "draft %s not found"
	ErrDevDraftLocked              = "draft %s is locked by another request"
	ErrDevDraftInvalidTransition   = "draft cannot move from %s to %s"
	ErrDevIndexOutOfRange          = "index out of range on %s"
	ErrDevUnknownArrayField        = "unknown array field %s"
	ErrDevUnknownResource          = "unknown resource %s"
	ErrDevRedisGetData             = "failed to get data from redis"
	ErrDevRedisSetData             = "failed to set data to redis"
	ErrDevRedisDeleteData          = "failed to delete data from redis"
	ErrDevRedisRightPushToList     = "failed to push to redis list"
	ErrDevRedisLeftPopList         = "failed to pop from redis list"
	ErrDevRedisSAdd                = "failed to add members to redis set"
	ErrDevRedisSMembers            = "failed to get members of redis set"
	ErrDevRedisUnlock              = "failed to release redis lock"
	ErrDevRabbitMQPublishMessage   = "failed to publish message to %s"
	ErrDevFileTooLarge             = "file %s exceeds %d MB"
	ErrDevMissingFormField         = "multipart field %s missing"
	ErrDevPasswordOnEdit           = "password sent for existing user %s"
)
