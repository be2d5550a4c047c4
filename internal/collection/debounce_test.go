package collection

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type checkRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *checkRecorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *checkRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func TestDebouncer_Trigger(t *testing.T) {
	t.Run("fires once after the quiet period", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)
		rec := &checkRecorder{}

		d.Trigger("Ghana", rec.record)
		time.Sleep(60 * time.Millisecond)

		assert.Equal(t, []string{"Ghana"}, rec.snapshot())
	})

	t.Run("newer input supersedes a pending check", func(t *testing.T) {
		d := NewDebouncer(40 * time.Millisecond)
		rec := &checkRecorder{}

		// "Gha" then "Ghan" before the timer elapses: only the latest fires.
		d.Trigger("Gha", rec.record)
		time.Sleep(10 * time.Millisecond)
		d.Trigger("Ghan", rec.record)
		time.Sleep(100 * time.Millisecond)

		assert.Equal(t, []string{"Ghan"}, rec.snapshot())
	})

	t.Run("stop cancels a pending check", func(t *testing.T) {
		d := NewDebouncer(30 * time.Millisecond)
		rec := &checkRecorder{}

		d.Trigger("Gha", rec.record)
		d.Stop()
		time.Sleep(80 * time.Millisecond)

		assert.Empty(t, rec.snapshot())
	})

	t.Run("separate quiet periods each fire", func(t *testing.T) {
		d := NewDebouncer(15 * time.Millisecond)
		rec := &checkRecorder{}

		d.Trigger("first", rec.record)
		time.Sleep(50 * time.Millisecond)
		d.Trigger("second", rec.record)
		time.Sleep(50 * time.Millisecond)

		assert.Equal(t, []string{"first", "second"}, rec.snapshot())
	})
}
