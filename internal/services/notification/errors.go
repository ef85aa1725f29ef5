package notification

import "errors"

var (
	ErrInvalidTarget = errors.New("invalid notification target")
	ErrNotRecipient  = errors.New("user is not the notification recipient")
	ErrMissingTitle  = errors.New("notification title is required")
)
