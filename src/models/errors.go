package models

import "errors"

// ErrMasterNotFound is returned by the matcher when a summary row has no
// corresponding master record under the configured key mode. It is recorded
// per entry and is never fatal to a batch.
var ErrMasterNotFound = errors.New("no master record for match key")
