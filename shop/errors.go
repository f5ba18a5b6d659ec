package shop

import "errors"

// Every failure the engine reports wraps one of these sentinels, so
// adapters can classify with errors.Is and decide how to present it.
// None of them are fatal; the engine never panics on bad input.
var (
	ErrUnknownCustomer          = errors.New("customer not found")
	ErrUnknownProduct           = errors.New("product not found")
	ErrInvalidProductOption     = errors.New("invalid product option")
	ErrNoStock                  = errors.New("no stock")
	ErrInvalidOrder             = errors.New("order not found")
	ErrInvalidName              = errors.New("invalid name")
	ErrInvalidAddress           = errors.New("invalid address")
	ErrIncorrectOrderingChannel = errors.New("incorrect ordering channel")
	ErrIllegalRating            = errors.New("rating out of range")
	ErrUnknownCategory          = errors.New("unknown category")
)
