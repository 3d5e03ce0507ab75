package compressor

import "github.com/pkg/errors"

var (
	// ErrInvalidDepthQuery is returned when asking for quadrants deeper than the tree goes.
	ErrInvalidDepthQuery = errors.New("invalid depth query")
	// ErrOutOfRangeConfig is returned for configuration outside its valid range.
	ErrOutOfRangeConfig = errors.New("config value out of range")
)

// NewInvalidDepthQueryError is used when a depth outside 0 through the realized depth is requested.
func NewInvalidDepthQueryError(requested, realized int) error {
	return errors.Wrapf(ErrInvalidDepthQuery, "depth %d is outside the tree's depth range [0, %d]", requested, realized)
}

// NewOutOfRangeConfigError is used when a config field falls outside [minimum, maximum].
func NewOutOfRangeConfigError(field string, value, minimum, maximum interface{}) error {
	return errors.Wrapf(ErrOutOfRangeConfig, "%s must be in [%v, %v] but got %v", field, minimum, maximum, value)
}
