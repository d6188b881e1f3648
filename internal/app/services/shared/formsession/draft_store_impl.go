package formsession

import (
	"context"
	"errors"
	"fmt"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	lockAttempts     = 5
	lockRetryBackoff = 50 * time.Millisecond
)

type draftStore[T any] struct {
	kind          string
	redisRepo     contracts.RedisRepository
	lockerService contracts.LockerService
	ttl           time.Duration
	lockTTL       time.Duration
	Log           *zap.Logger
}

func NewDraftStore[T any](
	kind string,
	redisRepo contracts.RedisRepository,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DraftStore[T] {
	return &draftStore[T]{
		kind:          kind,
		redisRepo:     redisRepo,
		lockerService: lockerService,
		ttl:           internalConfig.Draft.TTL,
		lockTTL:       internalConfig.Draft.LockTTL,
		Log:           logger,
	}
}

func (s *draftStore[T]) key(draftID string) string {
	return fmt.Sprintf(constvars.RedisKeyDraftFormat, s.kind, draftID)
}

// Save refreshes the draft TTL on every write.
func (s *draftStore[T]) Save(ctx context.Context, session *models.FormSession[T]) error {
	return s.redisRepo.Set(ctx, s.key(session.ID), session, s.ttl)
}

func (s *draftStore[T]) Find(ctx context.Context, draftID string) (*models.FormSession[T], error) {
	raw, err := s.redisRepo.Get(ctx, s.key(draftID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrDraftNotFound(nil, draftID)
	}

	var session models.FormSession[T]
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if session.Kind != s.kind {
		return nil, exceptions.ErrDraftNotFound(errors.New("draft kind mismatch"), draftID)
	}
	return &session, nil
}

func (s *draftStore[T]) Delete(ctx context.Context, draftID string) error {
	return s.redisRepo.Delete(ctx, s.key(draftID))
}

func (s *draftStore[T]) WithLock(ctx context.Context, draftID string, fn func() error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	lockKey := fmt.Sprintf(constvars.RedisKeyDraftLockFormat, draftID)

	var lockValue string
	for attempt := 0; attempt < lockAttempts; attempt++ {
		acquired, value, err := s.lockerService.TryLock(ctx, lockKey, s.lockTTL)
		if err != nil {
			return err
		}
		if acquired {
			lockValue = value
			break
		}

		select {
		case <-ctx.Done():
			return exceptions.ErrDraftLocked(ctx.Err(), draftID)
		case <-time.After(lockRetryBackoff):
		}
	}
	if lockValue == "" {
		s.Log.Warn("draftStore.WithLock draft is busy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDraftIDKey, draftID),
		)
		return exceptions.ErrDraftLocked(nil, draftID)
	}

	defer func() {
		if err := s.lockerService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			s.Log.Error("draftStore.WithLock error releasing draft lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDraftIDKey, draftID),
				zap.Error(err),
			)
		}
	}()

	return fn()
}
