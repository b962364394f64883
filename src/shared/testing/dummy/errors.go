package dummy

import "github.com/cockroachdb/errors"

var (
	NetworkFailure = errors.New("Network failure")
	ModelFailure   = errors.New("Model failure")
)
