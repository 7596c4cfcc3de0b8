package model

import "errors"

var (
	// ErrBookNotFound is returned when the referenced book does not exist
	ErrBookNotFound = errors.New("book not found")

	// ErrISBNTaken is returned when creating/updating with a duplicate ISBN
	ErrISBNTaken = errors.New("isbn already registered")

	// ErrInvalidCopyCounts is returned when an update would leave
	// available_copies outside [0, total_copies]
	ErrInvalidCopyCounts = errors.New("invalid copy counts: available copies must stay within 0..total copies")

	// ErrConcurrentUpdate is returned when the copy counters changed
	// between read and write (a lending operation won the race)
	ErrConcurrentUpdate = errors.New("book was modified concurrently")
)
