package collection

import "context"

// Record is one addressable item in a collection. Implementations must
// return a stable identifier for the lifetime of the record.
type Record interface {
	RecordID() string
}

// Store is the remote side of a mirrored collection. Implementations are
// expected to be backed by a database table (or a JSON array column for
// sub-resources) and give no transactional guarantees across calls.
type Store[T Record] interface {
	// FetchAll returns the full ordered collection.
	FetchAll(ctx context.Context) ([]T, error)

	// Insert persists a new record and returns the canonical stored form,
	// which may carry a server-assigned identifier or timestamp.
	Insert(ctx context.Context, record T) (T, error)

	// UpdateByID replaces the record with the given id and returns the
	// canonical stored form. Absence of the id is an error.
	UpdateByID(ctx context.Context, id string, record T) (T, error)

	// DeleteByID removes the record with the given id. Absence of the id
	// is treated as success.
	DeleteByID(ctx context.Context, id string) error
}

// Collection errors
type Error struct {
	Message string
}

func (e Error) Error() string {
	return e.Message
}

var (
	// ErrBusy is returned when a mutation is requested while another one
	// is still in flight on the same collection instance.
	ErrBusy = Error{"another mutation is in flight"}

	// ErrTimeout is returned when the store did not respond within the
	// mutation deadline. Distinguished from an outright rejection so the
	// caller can phrase the failure accordingly.
	ErrTimeout = Error{"store request timed out"}

	// ErrNotFound is returned when an update targets a record that is not
	// present in the local mirror.
	ErrNotFound = Error{"record not found"}
)
