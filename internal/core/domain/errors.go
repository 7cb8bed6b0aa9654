package domain

import "errors"

var (
	ErrInvalidName     = errors.New("invalid item name")
	ErrInvalidQuantity = errors.New("invalid stored quantity")
	ErrQuantityLimit   = errors.New("item quantity at maximum")
)
