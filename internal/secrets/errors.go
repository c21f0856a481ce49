package secrets

import "errors"

// ErrToken is returned for every token retrieval failure.
//
// The pipeline reports all credential problems with one user-facing
// message, so causes are wrapped for logs but never branched on.
var ErrToken = errors.New("secrets: unable to obtain token")
