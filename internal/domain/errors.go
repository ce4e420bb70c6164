package domain

import "errors"

var (
	// ErrWordNotFound is returned when no word has the requested id
	ErrWordNotFound = errors.New("word not found")

	// ErrMalformedStoredData is returned when the stored word list cannot be decoded
	ErrMalformedStoredData = errors.New("malformed stored word data")
)
