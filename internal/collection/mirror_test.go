package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRecord struct {
	ID   string
	Name string
}

func (r testRecord) RecordID() string { return r.ID }

func records(ids ...string) []testRecord {
	out := make([]testRecord, len(ids))
	for i, id := range ids {
		out[i] = testRecord{ID: id, Name: "item " + id}
	}
	return out
}

func ids(items []testRecord) []string {
	out := make([]string, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}

func TestMirror_ReplaceAll(t *testing.T) {
	t.Run("overwrites previous state", func(t *testing.T) {
		m := NewMirror[testRecord]()
		m.ReplaceAll(records("a", "b"))
		m.ReplaceAll(records("c"))

		assert.Equal(t, []string{"c"}, ids(m.Items()))
		_, ok := m.Get("a")
		assert.False(t, ok)
	})

	t.Run("copies the input slice", func(t *testing.T) {
		m := NewMirror[testRecord]()
		in := records("a", "b")
		m.ReplaceAll(in)
		in[0] = testRecord{ID: "mutated"}

		assert.Equal(t, "a", m.Items()[0].ID)
	})
}

func TestMirror_Upsert(t *testing.T) {
	t.Run("appends unknown id at the end", func(t *testing.T) {
		m := NewMirror[testRecord]()
		m.ReplaceAll(records("a", "b"))
		m.Upsert(testRecord{ID: "c", Name: "item c"})

		assert.Equal(t, []string{"a", "b", "c"}, ids(m.Items()))
	})

	t.Run("replaces in place preserving position", func(t *testing.T) {
		m := NewMirror[testRecord]()
		m.ReplaceAll(records("a", "b", "c"))
		m.Upsert(testRecord{ID: "b", Name: "edited"})

		assert.Equal(t, []string{"a", "b", "c"}, ids(m.Items()))
		got, ok := m.Get("b")
		assert.True(t, ok)
		assert.Equal(t, "edited", got.Name)
	})

	t.Run("upserting a fetched record leaves the mirror unchanged", func(t *testing.T) {
		m := NewMirror[testRecord]()
		fetched := records("a", "b", "c")
		m.ReplaceAll(fetched)
		m.Upsert(fetched[1])

		assert.Equal(t, 3, m.Len())
		assert.Equal(t, []string{"a", "b", "c"}, ids(m.Items()))
	})
}

func TestMirror_RemoveByID(t *testing.T) {
	t.Run("removes the matching record", func(t *testing.T) {
		m := NewMirror[testRecord]()
		m.ReplaceAll(records("a", "b", "c"))
		m.RemoveByID("b")

		assert.Equal(t, []string{"a", "c"}, ids(m.Items()))
	})

	t.Run("absence is a no-op", func(t *testing.T) {
		m := NewMirror[testRecord]()
		m.ReplaceAll(records("a"))
		m.RemoveByID("ghost")

		assert.Equal(t, 1, m.Len())
	})

	t.Run("is idempotent", func(t *testing.T) {
		m := NewMirror[testRecord]()
		m.ReplaceAll(records("a", "b"))
		m.RemoveByID("a")
		once := ids(m.Items())
		m.RemoveByID("a")

		assert.Equal(t, once, ids(m.Items()))
	})

	t.Run("keeps index consistent after removal", func(t *testing.T) {
		m := NewMirror[testRecord]()
		m.ReplaceAll(records("a", "b", "c"))
		m.RemoveByID("a")
		m.Upsert(testRecord{ID: "c", Name: "edited"})

		assert.Equal(t, []string{"b", "c"}, ids(m.Items()))
		got, _ := m.Get("c")
		assert.Equal(t, "edited", got.Name)
	})
}
