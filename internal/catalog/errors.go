package catalog

import "errors"

// ErrUnknownStage is returned when a stage or variant is not in the catalog.
var ErrUnknownStage = errors.New("unknown stage")
