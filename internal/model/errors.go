package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")

var (
	ErrInvalidRule    = errors.New("invalid recurrence rule")
	ErrInvalidWindow  = errors.New("window end is before window start")
	ErrNoRecipient    = errors.New("recipient has no delivery address")
	ErrPassInProgress = errors.New("another dispatch pass is in progress")
)
