package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/storefront-labs/storefront/internal/service"
)

// StartSessionWorker registers session event handlers and evicts idle view
// state every interval until ctx is done.
func StartSessionWorker(ctx context.Context, sessionEvents *service.SessionEventService, views *service.ViewRegistry, interval time.Duration, logger *zap.Logger) {
	if sessionEvents != nil {
		sessionEvents.RegisterHandlers()
	}
	if views == nil || interval <= 0 {
		return
	}
	go sweep(ctx, views, interval, logger)
}

func sweep(ctx context.Context, views *service.ViewRegistry, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := views.Sweep(); n > 0 {
				logger.Debug("idle views evicted", zap.Int("sessions", n), zap.Int("remaining", views.Len()))
			}
		}
	}
}
