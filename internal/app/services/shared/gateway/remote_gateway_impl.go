package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// messagePaths are checked in order on failure bodies to find a message worth showing the admin.
var messagePaths = []string{"message", "error.message", "errors.0.message", "error"}

// remotePaths overrides the default endpoint layout for resources whose remote routes differ.
// FindByID is a format string taking the escaped id.
type remotePaths struct {
	List     string
	FindByID string
	Create   string
}

var pathOverrides = map[string]remotePaths{
	constvars.ResourceCustomers: {FindByID: "/customers/%s", Create: "/customers"},
	constvars.ResourceUsers: {
		List:     "/users/get/non-customers",
		FindByID: "/users/get-by-id/%s",
		Create:   "/users/create-user",
	},
}

type remoteGateway struct {
	BaseUrl    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
}

func NewRemoteGateway(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.RemoteGateway {
	limit := rate.Inf
	if internalConfig.Gateway.RequestsPerSecond > 0 {
		limit = rate.Limit(internalConfig.Gateway.RequestsPerSecond)
	}
	return NewRemoteGatewayWithClient(
		internalConfig.Gateway.BaseUrl,
		&http.Client{Timeout: time.Duration(internalConfig.Gateway.RequestTimeoutInSeconds) * time.Second},
		rate.NewLimiter(limit, internalConfig.Gateway.Burst),
		logger,
	)
}

func NewRemoteGatewayWithClient(baseUrl string, httpClient *http.Client, limiter *rate.Limiter, logger *zap.Logger) contracts.RemoteGateway {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &remoteGateway{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: httpClient,
		Limiter:    limiter,
		Log:        logger,
	}
}

func (g *remoteGateway) FindByID(ctx context.Context, resource, id string, out interface{}) error {
	path := findByIDPath(resource, id)
	body, err := g.do(ctx, constvars.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(extractData(body), out); err != nil {
		g.Log.Error("remoteGateway.FindByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestIDFrom(ctx)),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Error(err),
		)
		return exceptions.ErrGatewayDecodeResponse(err, path)
	}
	return nil
}

func (g *remoteGateway) Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error) {
	body, err := g.do(ctx, constvars.MethodPost, createPath(resource), nil, payload)
	if err != nil {
		return nil, err
	}
	return extractData(body), nil
}

func (g *remoteGateway) Update(ctx context.Context, resource, id string, payload interface{}) (json.RawMessage, error) {
	body, err := g.do(ctx, constvars.MethodPatch, fmt.Sprintf("/%s/%s", resource, url.PathEscape(id)), nil, payload)
	if err != nil {
		return nil, err
	}
	return extractData(body), nil
}

func (g *remoteGateway) Delete(ctx context.Context, resource, id string) error {
	_, err := g.do(ctx, constvars.MethodDelete, fmt.Sprintf("/%s/%s", resource, url.PathEscape(id)), nil, nil)
	return err
}

func (g *remoteGateway) BatchDelete(ctx context.Context, resource string, ids []string) error {
	_, err := g.do(ctx, constvars.MethodPost, fmt.Sprintf("/%s/batch-delete", resource), nil, requests.BatchDelete{IDs: ids})
	return err
}

func (g *remoteGateway) List(ctx context.Context, resource string, query requests.ListQuery) (*responses.ListResult, error) {
	path := listPath(resource)
	body, err := g.do(ctx, constvars.MethodGet, path, listValues(query), nil)
	if err != nil {
		return nil, err
	}

	var result responses.ListResult
	if gjson.GetBytes(body, "data").Exists() {
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, exceptions.ErrGatewayDecodeResponse(err, path)
		}
	} else {
		result.Data = json.RawMessage(body)
	}
	return &result, nil
}

func (g *remoteGateway) do(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	requestID := requestIDFrom(ctx)
	g.Log.Info("remoteGateway.do called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingEndpointKey, path),
	)

	if err := g.Limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	var reader io.Reader
	if payload != nil {
		requestBody, err := json.Marshal(payload)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		reader = bytes.NewReader(requestBody)
	}

	target := g.BaseUrl + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		g.Log.Error("remoteGateway.do error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if payload != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if token, ok := ctx.Value(constvars.CONTEXT_BEARER_TOKEN_KEY).(string); ok && token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
	}
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		g.Log.Error("remoteGateway.do error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrReadBody(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ExtractErrorMessage(body)
		remoteErr := fmt.Errorf("remote responded %d: %s", resp.StatusCode, message)
		g.Log.Error("remoteGateway.do remote error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, method),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		if resp.StatusCode == http.StatusNotFound {
			return nil, exceptions.ErrGatewayNotFound(remoteErr, path)
		}
		return nil, exceptions.ErrGatewayRequest(remoteErr, statusFor(resp.StatusCode), message, method, path)
	}

	return body, nil
}

// ExtractErrorMessage pulls a human readable message out of a failure body, falling back to an
// empty string when nothing usable is present.
func ExtractErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	for _, path := range messagePaths {
		if result := gjson.GetBytes(body, path); result.Exists() && result.Type == gjson.String && result.String() != "" {
			return result.String()
		}
	}
	return ""
}

func extractData(body []byte) json.RawMessage {
	if data := gjson.GetBytes(body, "data"); data.Exists() {
		return json.RawMessage(data.Raw)
	}
	return json.RawMessage(body)
}

// statusFor keeps client errors as they are and reports remote server errors as a bad gateway.
func statusFor(remoteStatus int) int {
	if remoteStatus >= 400 && remoteStatus < 500 {
		return remoteStatus
	}
	return constvars.StatusBadGateway
}

func findByIDPath(resource, id string) string {
	if override := pathOverrides[resource].FindByID; override != "" {
		return fmt.Sprintf(override, url.PathEscape(id))
	}
	return fmt.Sprintf("/%s/id/%s", resource, url.PathEscape(id))
}

func createPath(resource string) string {
	if override := pathOverrides[resource].Create; override != "" {
		return override
	}
	return fmt.Sprintf("/%s/create", resource)
}

func listPath(resource string) string {
	if override := pathOverrides[resource].List; override != "" {
		return override
	}
	return "/" + resource
}

func listValues(query requests.ListQuery) url.Values {
	values := url.Values{}
	if query.Page > 0 {
		values.Set(constvars.QueryParamPage, strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		values.Set(constvars.QueryParamLimit, strconv.Itoa(query.Limit))
	}
	if query.Sort != "" {
		values.Set(constvars.QueryParamSort, query.Sort)
	}
	if query.SearchTerm != "" {
		values.Set(constvars.QueryParamSearchTerm, query.SearchTerm)
	}
	return values
}

func requestIDFrom(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}
