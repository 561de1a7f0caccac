package equity

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an invalid plan or grant shape: negative units,
// a cliff longer than the vesting period, an unsupported frequency.
//
// It is always surfaced to the caller and never silently corrected, because
// it indicates bad input data that would otherwise produce silently wrong
// financial figures. Missing market data (no FX rate for a purchase date, no
// current price) is deliberately NOT a ConfigurationError: the engine
// recovers locally with a default or zero so that a transient data gap
// degrades the display instead of aborting the whole computation.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string { return e.msg }

// configErrorf builds a ConfigurationError the fmt.Errorf way.
func configErrorf(format string, args ...any) error {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
