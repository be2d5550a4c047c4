package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginator_TotalPages(t *testing.T) {
	t.Run("rounds up partial pages", func(t *testing.T) {
		p := NewPaginator(12)
		p.SetTotal(25)
		assert.Equal(t, 3, p.TotalPages())
	})

	t.Run("empty collection has zero pages", func(t *testing.T) {
		p := NewPaginator(12)
		p.SetTotal(0)
		assert.Equal(t, 0, p.TotalPages())
		assert.Equal(t, 1, p.Page())
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := NewPaginator(10)
		p.SetTotal(30)
		assert.Equal(t, 3, p.TotalPages())
	})
}

func TestPaginator_Bounds(t *testing.T) {
	t.Run("first page is a half-open prefix", func(t *testing.T) {
		p := NewPaginator(12)
		p.SetTotal(25)
		lo, hi := p.Bounds()
		assert.Equal(t, 0, lo)
		assert.Equal(t, 12, hi)
	})

	t.Run("last page is truncated to the total", func(t *testing.T) {
		p := NewPaginator(12)
		p.SetTotal(25)
		p.SetPage(3)
		lo, hi := p.Bounds()
		assert.Equal(t, 24, lo)
		assert.Equal(t, 25, hi)
	})

	t.Run("empty collection yields an empty slice", func(t *testing.T) {
		p := NewPaginator(12)
		lo, hi := p.Bounds()
		assert.Equal(t, 0, lo)
		assert.Equal(t, 0, hi)
	})
}

func TestPaginator_Clamp(t *testing.T) {
	t.Run("page never exceeds the last page", func(t *testing.T) {
		p := NewPaginator(10)
		p.SetTotal(50)
		p.SetPage(9)
		assert.Equal(t, 5, p.Page())
	})

	t.Run("shrinking the total clamps downward", func(t *testing.T) {
		p := NewPaginator(10)
		p.SetTotal(50)
		p.SetPage(5)
		p.SetTotal(21)
		assert.Equal(t, 3, p.Page())
	})

	t.Run("page never goes below one", func(t *testing.T) {
		p := NewPaginator(10)
		p.SetTotal(50)
		p.SetPage(0)
		assert.Equal(t, 1, p.Page())
		p.SetPage(-3)
		assert.Equal(t, 1, p.Page())
	})
}

func TestPaginator_Window(t *testing.T) {
	t.Run("shows all pages when five or fewer", func(t *testing.T) {
		p := NewPaginator(12)
		p.SetTotal(25)

		p.SetPage(1)
		assert.Equal(t, []int{1, 2, 3}, p.Window())

		p.SetPage(3)
		assert.Equal(t, []int{1, 2, 3}, p.Window())
	})

	t.Run("leading window near the start", func(t *testing.T) {
		p := NewPaginator(10)
		p.SetTotal(100)

		for _, page := range []int{1, 2, 3} {
			p.SetPage(page)
			assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Window(), "page %d", page)
		}
	})

	t.Run("trailing window near the end", func(t *testing.T) {
		p := NewPaginator(10)
		p.SetTotal(100)

		for _, page := range []int{8, 9, 10} {
			p.SetPage(page)
			assert.Equal(t, []int{6, 7, 8, 9, 10}, p.Window(), "page %d", page)
		}
	})

	t.Run("centered window in the middle", func(t *testing.T) {
		p := NewPaginator(10)
		p.SetTotal(100)
		p.SetPage(6)
		assert.Equal(t, []int{4, 5, 6, 7, 8}, p.Window())
	})

	t.Run("empty collection has no window", func(t *testing.T) {
		p := NewPaginator(10)
		assert.Nil(t, p.Window())
	})
}

func TestPageSlice(t *testing.T) {
	t.Run("returns the current page slice", func(t *testing.T) {
		items := records("a", "b", "c", "d", "e")
		p := NewPaginator(2)
		p.SetTotal(len(items))
		p.SetPage(2)

		assert.Equal(t, []string{"c", "d"}, ids(PageSlice(items, p)))
	})

	t.Run("final partial page", func(t *testing.T) {
		items := records("a", "b", "c", "d", "e")
		p := NewPaginator(2)
		p.SetTotal(len(items))
		p.SetPage(3)

		assert.Equal(t, []string{"e"}, ids(PageSlice(items, p)))
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		p := NewPaginator(2)
		assert.Nil(t, PageSlice([]testRecord{}, p))
	})
}
