package contracts

import (
	"context"
	"mrchemist-admin-service/internal/pkg/dto/requests"
)

type AssetHost interface {
	Upload(ctx context.Context, file requests.StagedFile) (string, error)
	Delete(ctx context.Context, urls []string) error
}

type AssetReconciler interface {
	// UploadStaged uploads every file or none: on any failure the files already uploaded in the
	// batch are removed and the error is returned.
	UploadStaged(ctx context.Context, files []requests.StagedFile) ([]string, error)
	// CleanupOrphans deletes previous URLs missing from current without blocking the caller.
	CleanupOrphans(ctx context.Context, resource string, previous, current []string)
	// Wait blocks until every cleanup started so far has finished.
	Wait()
}
