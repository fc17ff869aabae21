package services

import "errors"

// Validation errors. The bot layer turns these into user-visible denials;
// anything else is logged and not surfaced.
var (
	ErrUnknownItem            = errors.New("item is not on the menu")
	ErrForbidden              = errors.New("forbidden")
	ErrPaymentPayloadMismatch = errors.New("payment payload mismatch")
)
