package model

import (
	"errors"
	"fmt"
)

// ErrUnstable indicates the numerical integration produced a NaN or Inf
// state and the run was aborted.
var ErrUnstable = errors.New("packsim: simulation unstable (state diverged)")

// UnsupportedChemistryError reports a chemistry tag outside the closed set.
// No default chemistry is ever substituted.
type UnsupportedChemistryError struct {
	Tag string
}

func (e *UnsupportedChemistryError) Error() string {
	return fmt.Sprintf("unsupported chemistry %q (supported: %v)", e.Tag, Chemistries())
}

// InvalidConfigurationError reports a structurally invalid user configuration,
// such as a non-positive series or parallel count. It is raised before any
// external factory call is made.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}
