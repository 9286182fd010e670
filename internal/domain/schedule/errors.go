package schedule

import (
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var (
	ErrInvalidConfiguration = crerr.New("invalid scheduling configuration")
	ErrInfeasible           = crerr.New("schedule is infeasible")
	ErrDegenerateInput      = crerr.New("at least two distinct teams are required")
)

const infeasibleHint = "extend the season window, increase venues or slots per venue, or reduce rest weeks between matches"

// Violation is a single invalid configuration field.
type Violation struct {
	Field   string
	Rule    string
	Message string
}

// ConfigError reports every invalid field found before scheduling.
type ConfigError struct {
	Violations []Violation
}

func newConfigError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ConfigError{Violations: violations}
}

func (e *ConfigError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfiguration.Error(), strings.Join(parts, "; "))
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func mergeConfigErrors(errs ...error) error {
	var violations []Violation
	for _, err := range errs {
		if err == nil {
			continue
		}
		var cfgErr *ConfigError
		if !crerr.As(err, &cfgErr) {
			return err
		}
		violations = append(violations, cfgErr.Violations...)
	}
	return newConfigError(violations)
}

// InfeasibleError is returned instead of a partial schedule.
type InfeasibleError struct {
	Unplaced           int
	Placed             int
	RequiredMatchdays  int
	AvailableMatchdays int
	LastDate           time.Time
}

func (e *InfeasibleError) Error() string {
	last := "none"
	if !e.LastDate.IsZero() {
		last = e.LastDate.Format(time.DateOnly)
	}
	return fmt.Sprintf(
		"%s: %d of %d fixtures unplaced, %d matchdays available (at least %d required), last matchday considered %s",
		ErrInfeasible.Error(),
		e.Unplaced,
		e.Unplaced+e.Placed,
		e.AvailableMatchdays,
		e.RequiredMatchdays,
		last,
	)
}

func (e *InfeasibleError) Is(target error) bool {
	return target == ErrInfeasible
}

func infeasible(e *InfeasibleError) error {
	return crerr.WithHint(e, infeasibleHint)
}
