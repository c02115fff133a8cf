package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnknownShipping is returned for a shipping key outside ShippingOptions.
	ErrUnknownShipping = errors.New("unknown shipping option")
)
