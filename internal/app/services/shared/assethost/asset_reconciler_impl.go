package assethost

import (
	"context"
	"fmt"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const cleanupTimeout = 30 * time.Second

type assetReconciler struct {
	assetHost     contracts.AssetHost
	notifications contracts.NotificationService
	inFlight      sync.WaitGroup
	Log           *zap.Logger
}

func NewAssetReconciler(assetHost contracts.AssetHost, notifications contracts.NotificationService, logger *zap.Logger) contracts.AssetReconciler {
	return &assetReconciler{
		assetHost:     assetHost,
		notifications: notifications,
		Log:           logger,
	}
}

func (r *assetReconciler) UploadStaged(ctx context.Context, files []requests.StagedFile) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	requestID := utils.GetRequestID(ctx)
	r.Log.Info("assetReconciler.UploadStaged called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFileCountKey, len(files)),
	)

	urls := make([]string, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			url, err := r.assetHost.Upload(groupCtx, file)
			if err != nil {
				return exceptions.ErrAssetUpload(err, file.Filename)
			}
			urls[i] = url
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		uploaded := make([]string, 0, len(urls))
		for _, url := range urls {
			if url != "" {
				uploaded = append(uploaded, url)
			}
		}
		if len(uploaded) > 0 {
			cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
			if deleteErr := r.assetHost.Delete(cleanupCtx, uploaded); deleteErr != nil {
				r.Log.Error("assetReconciler.UploadStaged error removing partial uploads",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Strings(constvars.LoggingURLsKey, uploaded),
					zap.Error(deleteErr),
				)
			}
			cancel()
		}
		return nil, err
	}
	return urls, nil
}

func (r *assetReconciler) CleanupOrphans(ctx context.Context, resource string, previous, current []string) {
	orphans := OrphanedURLs(previous, current)
	if len(orphans) == 0 {
		return
	}

	detached := utils.DetachedContext(ctx)
	r.inFlight.Add(1)
	go func() {
		defer r.inFlight.Done()
		cleanupCtx, cancel := context.WithTimeout(detached, cleanupTimeout)
		defer cancel()

		var (
			mu     sync.Mutex
			failed []string
			wg     sync.WaitGroup
		)
		for _, url := range orphans {
			url := url
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := r.assetHost.Delete(cleanupCtx, []string{url}); err != nil {
					r.Log.Error("assetReconciler.CleanupOrphans error deleting asset",
						zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(detached)),
						zap.String(constvars.LoggingResourceKey, resource),
						zap.String("url", url),
						zap.Error(err),
					)
					mu.Lock()
					failed = append(failed, url)
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if len(failed) > 0 {
			r.notifications.Error(detached, resource, "Warning", exceptions.ErrAssetDelete(fmt.Errorf("%d of %d assets left behind", len(failed), len(orphans))))
		}
	}()
}

func (r *assetReconciler) Wait() {
	r.inFlight.Wait()
}

// OrphanedURLs returns the URLs of previous that current no longer references, in previous order.
func OrphanedURLs(previous, current []string) []string {
	kept := make(map[string]struct{}, len(current))
	for _, url := range current {
		kept[url] = struct{}{}
	}

	var orphans []string
	seen := make(map[string]struct{}, len(previous))
	for _, url := range previous {
		if url == "" {
			continue
		}
		if _, ok := kept[url]; ok {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		orphans = append(orphans, url)
	}
	return orphans
}
