package model

import "errors"

// ErrStoreUnavailable marks a store that could not be reached at all
var ErrStoreUnavailable = errors.New("store unavailable")
