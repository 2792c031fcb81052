package db

import "errors"

// ErrNotFound is returned when a document does not exist in Firestore.
// Repositories wrap it with document context; callers test with errors.Is.
var ErrNotFound = errors.New("document not found")

// ErrCarUnavailable is returned by the booking transaction when the target
// car's status was already "Booked" at transaction time.
var ErrCarUnavailable = errors.New("car is not available")
