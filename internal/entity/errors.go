package entity

import "errors"

var (
	// Validation errors, surfaced as 400
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingTitle     = errors.New("title is required")
	ErrMissingType      = errors.New("notification type is required")
	ErrInvalidType      = errors.New("invalid notification type")
	ErrMissingPhone     = errors.New("destination phone is required")
	ErrMissingTicketID  = errors.New("ticket id is required")
	ErrEmptyTicketPatch = errors.New("no ticket fields to update")

	// Not-found errors, surfaced as 404
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrNotificationNotFound = errors.New("notification not found")

	// Configuration errors, surfaced as 500
	ErrGatewayNotConfigured = errors.New("messaging gateway credentials are not configured")
	ErrPushNotConfigured    = errors.New("push provider is not configured")
)
