package utils

import (
	"fmt"
	"mrchemist-admin-service/internal/pkg/constvars"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateFileName keeps the original extension so the asset host can serve a sensible content type.
func GenerateFileName(prefix, originalName string) string {
	timestamp := time.Now().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s_%s_%s%s", prefix, timestamp, uuid.NewString()[:8], strings.ToLower(filepath.Ext(originalName)))
}
