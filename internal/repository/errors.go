package repository

// Error is the error type for generic repository failures
type Error struct {
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// ErrRowNotFound is returned when an update targets an id with no row.
// Deletes never return it: absence of the target is treated as success.
var ErrRowNotFound = Error{"row not found"}
