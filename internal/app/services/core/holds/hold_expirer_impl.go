package holds

import (
	"context"
	"sync"
	"time"

	"onterapi-service/internal/app/contracts"
	"onterapi-service/internal/app/models"
	"onterapi-service/internal/pkg/constvars"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type holdExpirer struct {
	HoldRepository contracts.HoldRepository
	AuditSink      contracts.AuditSink
	WriteLimiter   *rate.Limiter
	Log            *zap.Logger
}

var (
	holdExpirerInstance contracts.HoldExpirer
	onceHoldExpirer     sync.Once
)

func NewHoldExpirer(
	holdRepository contracts.HoldRepository,
	auditSink contracts.AuditSink,
	writesPerSecond int,
	logger *zap.Logger,
) contracts.HoldExpirer {
	onceHoldExpirer.Do(func() {
		if writesPerSecond <= 0 {
			writesPerSecond = 10
		}
		holdExpirerInstance = &holdExpirer{
			HoldRepository: holdRepository,
			AuditSink:      auditSink,
			WriteLimiter:   rate.NewLimiter(rate.Limit(writesPerSecond), 1),
			Log:            logger,
		}
	})
	return holdExpirerInstance
}

// ExpireDueHolds transitions due pending holds to expired, paced so a large
// backlog does not saturate the database. Holds that left pending between the
// read and the write are skipped by the status guard.
func (e *holdExpirer) ExpireDueHolds(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := e.HoldRepository.FindDuePending(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	expired := 0
	for index := range due {
		hold := &due[index]
		if err := e.WriteLimiter.Wait(ctx); err != nil {
			return expired, err
		}

		updated, err := e.HoldRepository.UpdateStatus(ctx, hold.ID, models.HoldStatusPending, models.HoldStatusExpired, nil)
		if err != nil {
			return expired, err
		}
		if updated == nil {
			continue
		}
		expired++

		e.AuditSink.Register(ctx, &models.AuditEntry{
			TenantID: hold.TenantID,
			ClinicID: hold.ClinicID,
			Event:    constvars.AuditEventHoldExpired,
			Detail: map[string]interface{}{
				"holdId":       hold.ID,
				"ttlExpiresAt": hold.TTLExpiresAt,
				"start":        hold.Start,
			},
		})
	}

	if expired > 0 {
		e.Log.Info("Expired due booking holds",
			zap.Int(constvars.LoggingCountKey, expired),
		)
	}
	return expired, nil
}
