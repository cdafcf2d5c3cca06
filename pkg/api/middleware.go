package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/pgoetz/csvclean/pkg/kit"
)

// logged emits one line per endpoint call, on whichever transport dispatched
// it. Failures are warnings; successes stay at debug level.
func logged(name string, logger *slog.Logger) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			if err != nil {
				logger.Warn("endpoint failed", "endpoint", name, "duration", time.Since(start), "error", err)
				return resp, err
			}
			logger.Debug("endpoint served", "endpoint", name, "duration", time.Since(start))
			return resp, err
		}
	}
}
