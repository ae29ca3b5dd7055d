package kad

import (
	"github.com/james-lawrence/kad/internal/errorsx"
)

const (
	// ErrSearchStarted a search instance is single use.
	ErrSearchStarted = errorsx.String("search already started")
	// ErrNothingResolved none of the provided seed hosts resolved.
	ErrNothingResolved = errorsx.String("nothing resolved")
)
