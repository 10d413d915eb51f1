package contract

import "errors"

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidArguments = errors.New("invalid arguments")
	ErrAccountNotFound  = errors.New("account not found")
	ErrCardNotFound     = errors.New("card not found")
	ErrConnection       = errors.New("tool server connection failed")
	ErrRoundTripLimit   = errors.New("operation round-trip limit exceeded")
	ErrModelInvoke      = errors.New("model invoke failed")
	ErrEmptyMessage     = errors.New("message is empty")
)
