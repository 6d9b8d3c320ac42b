package domain

import "errors"

var (
	// ErrInvalidDate indicates a value that is not a YYYY-MM-DD calendar day.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidUnit indicates an unknown temperature unit tag.
	ErrInvalidUnit = errors.New("invalid temperature unit")
	// ErrInvalidCategory indicates an unknown note category.
	ErrInvalidCategory = errors.New("invalid note category")
)
