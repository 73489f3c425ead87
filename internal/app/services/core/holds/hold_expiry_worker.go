package holds

import (
	"context"
	"time"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

const holdSweepLockKey = "locks:booking:hold_sweep"

// ExpiryWorker drives the hold-expiry sweep on a timer. A redis lock keeps
// the sweep single-flight across instances; an instance that cannot take the
// lock just waits for the next tick.
type ExpiryWorker struct {
	Expirer        contracts.HoldExpirer
	Locker         contracts.LockerService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewExpiryWorker(
	expirer contracts.HoldExpirer,
	locker contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *ExpiryWorker {
	return &ExpiryWorker{
		Expirer:        expirer,
		Locker:         locker,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

// Start launches the sweep loop and returns a stop function that blocks until
// the loop has drained.
func (w *ExpiryWorker) Start(ctx context.Context) func() {
	interval := time.Duration(w.InternalConfig.Booking.HoldSweepIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				w.sweep(loopCtx, interval)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func (w *ExpiryWorker) sweep(ctx context.Context, interval time.Duration) {
	acquired, lockValue, err := w.Locker.TryLock(ctx, holdSweepLockKey, interval)
	if err != nil {
		w.Log.Error("Hold sweep could not acquire its lock",
			zap.String(constvars.LoggingRedisKey, holdSweepLockKey),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := w.Locker.Unlock(ctx, holdSweepLockKey, lockValue); err != nil {
			w.Log.Error("Hold sweep failed to release its lock",
				zap.String(constvars.LoggingRedisKey, holdSweepLockKey),
				zap.Error(err),
			)
		}
	}()

	if _, err := w.Expirer.ExpireDueHolds(ctx, time.Now().UTC(), w.InternalConfig.Booking.HoldSweepBatchSize); err != nil {
		w.Log.Error("Hold sweep failed",
			zap.Error(err),
		)
	}
}
