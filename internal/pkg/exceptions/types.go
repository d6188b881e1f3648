package exceptions

import (
	"fmt"
	"mrchemist-admin-service/internal/pkg/constvars"
)

var (
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidationFailed, paramName))
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrFileTooLarge = func(err error, filename string, maxSizeInMB int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientFileTooLarge, fmt.Sprintf(constvars.ErrDevFileTooLarge, filename, maxSizeInMB))
	}
	ErrMissingFormField = func(err error, field string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientMissingFile, fmt.Sprintf(constvars.ErrDevMissingFormField, field))
	}
	ErrReadBody = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevReadBody)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
	ErrTokenInvalid = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalid)
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSendHTTPRequest)
	}
	// ErrGatewayRequest surfaces the remote API's own message to the admin when one could be extracted.
	ErrGatewayRequest = func(err error, statusCode int, clientMessage, method, path string) *CustomError {
		if clientMessage == "" {
			clientMessage = constvars.ErrClientSomethingWrongWithApplication
		}
		return BuildNewCustomError(err, statusCode, clientMessage, fmt.Sprintf(constvars.ErrDevGatewayRequestFailed, method, path))
	}
	ErrGatewayNotFound = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientEntityNotFound, fmt.Sprintf(constvars.ErrDevGatewayNotFound, path))
	}
	ErrGatewayDecodeResponse = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevGatewayDecodeResponse, path))
	}
	ErrAssetUpload = func(err error, filename string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientUploadFailed, fmt.Sprintf(constvars.ErrDevAssetUpload, filename))
	}
	ErrAssetDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientImageCleanupFailed, constvars.ErrDevAssetDelete)
	}
	ErrMinioCreateObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientUploadFailed, fmt.Sprintf(constvars.ErrDevMinioCreateObject, bucketName))
	}
	ErrMinioRemoveObject = func(err error, bucketName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientImageCleanupFailed, fmt.Sprintf(constvars.ErrDevMinioRemoveObject, bucketName))
	}
	ErrDraftNotFound = func(err error, draftID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientDraftNotFound, fmt.Sprintf(constvars.ErrDevDraftNotFound, draftID))
	}
	ErrDraftLocked = func(err error, draftID string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientDraftBusy, fmt.Sprintf(constvars.ErrDevDraftLocked, draftID))
	}
	ErrDraftInvalidTransition = func(err error, clientMessage, from, to string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, clientMessage, fmt.Sprintf(constvars.ErrDevDraftInvalidTransition, from, to))
	}
	ErrIndexOutOfRange = func(err error, field string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientIndexOutOfRange, fmt.Sprintf(constvars.ErrDevIndexOutOfRange, field))
	}
	ErrPasswordOnEdit = func(userID string) *CustomError {
		return BuildNewCustomError(nil, constvars.StatusBadRequest, constvars.ErrClientPasswordOnEdit, fmt.Sprintf(constvars.ErrDevPasswordOnEdit, userID))
	}
	ErrUnknownArrayField = func(err error, field string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientUnknownArrayField, fmt.Sprintf(constvars.ErrDevUnknownArrayField, field))
	}
	ErrUnknownResource = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientUnknownResource, fmt.Sprintf(constvars.ErrDevUnknownResource, resource))
	}
	ErrRedisGetData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSetData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDeleteData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisRightPushToList = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisRightPushToList)
	}
	ErrRedisLeftPopList = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisLeftPopList)
	}
	ErrRedisSAdd = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSAdd)
	}
	ErrRedisSMembers = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSMembers)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrRabbitMQPublishMessage = func(err error, exchange string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, exchange))
	}
)
