package model

import "errors"

var (
	// ErrNotFound is returned when an order or document is missing from the records.
	ErrNotFound = errors.New("not in the order records")
	// ErrAlreadyExists is returned when an order or document with the same ID was already registered.
	ErrAlreadyExists = errors.New("already registered")
	// ErrNotValid is returned when an order, document or checklist task reference fails validation.
	ErrNotValid = errors.New("not valid")
)
