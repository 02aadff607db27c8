package errors

import "errors"

var (
	ErrInvalidActorID  = errors.New("invalid actor id")
	ErrInvalidAction   = errors.New("invalid action")
	ErrInvalidResource = errors.New("invalid resource reference")
)
