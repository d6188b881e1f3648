package treatmentlookup

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/utils"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const leaderLockTTL = time.Minute

// Worker refreshes the treatment cache on a schedule. Only the replica holding the leader lock
// calls the remote API on a given tick.
type Worker struct {
	log    *zap.Logger
	cfg    *config.InternalConfig
	locker contracts.LockerService
	lookup contracts.TreatmentLookup
	cron   *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, lookup contracts.TreatmentLookup) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, lookup: lookup}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	_, err := c.AddFunc(w.cfg.Cache.TreatmentCronSpec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("treatmentlookup.worker: invalid cron spec, falling back to @every 5m", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@every 5m", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop cancels the running refresh and waits for it to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
	if token := w.cfg.Gateway.ServiceToken; token != "" {
		ctx = context.WithValue(ctx, constvars.CONTEXT_BEARER_TOKEN_KEY, token)
	}

	acquired, lockValue, err := w.locker.TryLock(ctx, constvars.RedisKeyTreatmentLeaderLock, leaderLockTTL)
	if err != nil {
		w.log.Warn("treatmentlookup.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Debug("treatmentlookup.worker: another instance is refreshing")
		return
	}
	defer w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyTreatmentLeaderLock, lockValue)

	var count int
	err = utils.LogOperation(w.log, "treatmentlookup.worker.Refresh", utils.GetRequestID(ctx), func() error {
		options, err := w.lookup.Refresh(ctx)
		count = len(options)
		return err
	})
	if err != nil {
		return
	}
	w.log.Debug("treatmentlookup.worker: refreshed treatment options", zap.Int(constvars.LoggingCountKey, count))
}
