package services

import "errors"

// Service errors, matched with errors.Is at the HTTP boundary. Store-level
// details are wrapped onto these and logged, never sent to clients.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrQueryFailed      = errors.New("query failed")
	ErrNotFound         = errors.New("report not found")
	ErrInvalidID        = errors.New("invalid report id")
)
