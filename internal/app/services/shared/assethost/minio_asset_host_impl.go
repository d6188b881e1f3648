package assethost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioAssetHost struct {
	MinioClient   *minio.Client
	BucketName    string
	PublicBaseUrl string
	Log           *zap.Logger
}

func NewMinioAssetHost(minioClient *minio.Client, bucketName, publicBaseUrl string, logger *zap.Logger) contracts.AssetHost {
	return &minioAssetHost{
		MinioClient:   minioClient,
		BucketName:    bucketName,
		PublicBaseUrl: strings.TrimRight(publicBaseUrl, "/"),
		Log:           logger,
	}
}

func (m *minioAssetHost) Upload(ctx context.Context, file requests.StagedFile) (string, error) {
	objectName := utils.GenerateFileName("asset", file.Filename)
	contentType := file.ContentType
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, bytes.NewReader(file.Content), int64(len(file.Content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		m.Log.Error("minioAssetHost.Upload error putting object",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String("object_name", objectName),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return m.objectURL(objectName), nil
}

// Delete removes the objects behind urls. URLs that do not belong to the bucket are skipped.
func (m *minioAssetHost) Delete(ctx context.Context, urls []string) error {
	var errs []error
	for _, url := range urls {
		objectName, ok := m.objectName(url)
		if !ok {
			m.Log.Warn("minioAssetHost.Delete skipping foreign url",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String("url", url),
			)
			continue
		}
		if err := m.MinioClient.RemoveObject(ctx, m.BucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", objectName, err))
		}
	}
	if len(errs) > 0 {
		return exceptions.ErrMinioRemoveObject(errors.Join(errs...), m.BucketName)
	}
	return nil
}

func (m *minioAssetHost) objectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.PublicBaseUrl, m.BucketName, objectName)
}

func (m *minioAssetHost) objectName(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", m.PublicBaseUrl, m.BucketName)
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}
