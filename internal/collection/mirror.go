package collection

// Mirror is the client-held in-memory copy of a remote collection. It is
// the single source of truth for rendering and is only ever written by the
// Coordinator and the initial fetch, which keeps rollback well-defined.
//
// Mirror itself is not synchronized; the Controller serializes access.
type Mirror[T Record] struct {
	records []T
	index   map[string]int
}

// NewMirror creates an empty mirror.
func NewMirror[T Record]() *Mirror[T] {
	return &Mirror[T]{index: make(map[string]int)}
}

// ReplaceAll overwrites the mirror with the given records. Used after a
// successful fetch. Never fails.
func (m *Mirror[T]) ReplaceAll(records []T) {
	m.records = make([]T, len(records))
	copy(m.records, records)
	m.reindex()
}

// Upsert inserts the record at the end if its id is not present, otherwise
// replaces the matching element in place, preserving its position.
func (m *Mirror[T]) Upsert(record T) {
	if pos, ok := m.index[record.RecordID()]; ok {
		m.records[pos] = record
		return
	}
	m.records = append(m.records, record)
	m.index[record.RecordID()] = len(m.records) - 1
}

// RemoveByID removes the record with the given id. Absence is a no-op, not
// an error: remote deletes may race with local removal.
func (m *Mirror[T]) RemoveByID(id string) {
	pos, ok := m.index[id]
	if !ok {
		return
	}
	m.records = append(m.records[:pos], m.records[pos+1:]...)
	m.reindex()
}

// Get returns the record with the given id.
func (m *Mirror[T]) Get(id string) (T, bool) {
	if pos, ok := m.index[id]; ok {
		return m.records[pos], true
	}
	var zero T
	return zero, false
}

// Items returns the ordered records. The returned slice is shared; callers
// must not mutate it.
func (m *Mirror[T]) Items() []T {
	return m.records
}

// Len returns the number of records held.
func (m *Mirror[T]) Len() int {
	return len(m.records)
}

func (m *Mirror[T]) reindex() {
	m.index = make(map[string]int, len(m.records))
	for i, r := range m.records {
		m.index[r.RecordID()] = i
	}
}
