package artifact

import "errors"

var (
	// ErrNameCollision is returned when a name is registered twice.
	ErrNameCollision = errors.New("artifact name collision")
	// ErrMissingInput is returned when a handle does not refer to a registered artifact.
	ErrMissingInput = errors.New("missing input artifact")
)
