package assethost

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// httpAssetHost speaks the dashboard's upload/delete contract:
// POST /upload {buffer, filename} -> {url} and POST /delete {urls} -> {success, result}.
type httpAssetHost struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewHTTPAssetHost(baseUrl string, httpClient *http.Client, logger *zap.Logger) contracts.AssetHost {
	return &httpAssetHost{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: httpClient,
		Log:        logger,
	}
}

func (h *httpAssetHost) Upload(ctx context.Context, file requests.StagedFile) (string, error) {
	body, err := h.post(ctx, "/upload", requests.UploadAsset{Buffer: requests.ByteArray(file.Content), Filename: file.Filename})
	if err != nil {
		return "", err
	}

	var result responses.UploadAsset
	if err := json.Unmarshal(body, &result); err != nil || result.URL == "" {
		if err == nil {
			err = fmt.Errorf("upload response carries no url")
		}
		return "", exceptions.ErrAssetUpload(err, file.Filename)
	}
	return result.URL, nil
}

func (h *httpAssetHost) Delete(ctx context.Context, urls []string) error {
	body, err := h.post(ctx, "/delete", requests.DeleteAssets{URLs: urls})
	if err != nil {
		return err
	}

	var result responses.DeleteAssets
	if err := json.Unmarshal(body, &result); err != nil {
		return exceptions.ErrAssetDelete(err)
	}
	if !result.Success {
		return exceptions.ErrAssetDelete(fmt.Errorf("asset host refused delete of %d urls", len(urls)))
	}
	return nil
}

func (h *httpAssetHost) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	requestID := utils.GetRequestID(ctx)

	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, h.BaseUrl+path, bytes.NewReader(requestBody))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if token := utils.GetBearerToken(ctx); token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
	}

	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		h.Log.Error("httpAssetHost.post error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exceptions.ErrReadBody(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := gjson.GetBytes(body, "message").String()
		h.Log.Error("httpAssetHost.post asset host error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		return nil, exceptions.ErrSendHTTPRequest(fmt.Errorf("asset host responded %d: %s", resp.StatusCode, message))
	}
	return body, nil
}
