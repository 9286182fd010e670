package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/matchday/internal/config"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

// Setup starts tracing and profiling as configured. The returned shutdown
// flushes both and joins their errors; it is safe to call when either is off.
func Setup(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	shutdownTracing, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}

	stopProfiling, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	return func(ctx context.Context) error {
		var errs []error
		if err := stopProfiling(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
		if err := shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
		}
		return errors.Join(errs...)
	}, nil
}
