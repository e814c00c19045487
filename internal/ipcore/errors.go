package ipcore

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidParameter is matched by every ParamError via errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError describes a generator argument that failed validation.
type ParamError struct {
	Core   string
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: parameter %q %s", e.Core, e.Param, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidParameter) match any ParamError.
func (e *ParamError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// NewParamError builds a ParamError with a formatted reason.
func NewParamError(core, param, format string, args ...any) *ParamError {
	return &ParamError{Core: core, Param: param, Reason: fmt.Sprintf(format, args...)}
}

// CheckChoice fails unless value is one of choices.
func CheckChoice[T comparable](core, param string, value T, choices ...T) error {
	for _, c := range choices {
		if c == value {
			return nil
		}
	}
	opts := make([]string, len(choices))
	for i, c := range choices {
		opts[i] = fmt.Sprint(c)
	}
	return NewParamError(core, param, "must be one of [%s], got %v", strings.Join(opts, ", "), value)
}

// CheckRange fails unless lo <= value <= hi.
func CheckRange(core, param string, value, lo, hi int) error {
	if value < lo || value > hi {
		return NewParamError(core, param, "must be in range [%d, %d], got %d", lo, hi, value)
	}
	return nil
}

// CheckPositive fails unless value > 0.
func CheckPositive(core, param string, value int) error {
	if value <= 0 {
		return NewParamError(core, param, "must be positive, got %d", value)
	}
	return nil
}
