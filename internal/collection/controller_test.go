package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedController(t *testing.T, seed []testRecord, pageSize int, opts ...Option[testRecord]) (*Controller[testRecord], *fakeStore) {
	t.Helper()
	store := newFakeStore(seed...)
	ctrl := NewController[testRecord](store, pageSize, opts...)
	require.NoError(t, ctrl.Load(context.Background()))
	return ctrl, store
}

func seq(n int) []testRecord {
	out := make([]testRecord, n)
	for i := range out {
		out[i] = testRecord{ID: string(rune('a' + i)), Name: "item " + string(rune('a'+i))}
	}
	return out
}

func TestController_Load(t *testing.T) {
	t.Run("mirrors the store and starts on page one", func(t *testing.T) {
		ctrl, _ := loadedController(t, seq(25), 12)

		info := ctrl.Info()
		assert.Equal(t, 1, info.Page)
		assert.Equal(t, 25, info.TotalItems)
		assert.Equal(t, 3, info.TotalPages)
		assert.Len(t, ctrl.Page(), 12)
	})

	t.Run("empty collection is the zero state, not an error", func(t *testing.T) {
		ctrl, _ := loadedController(t, nil, 12)

		info := ctrl.Info()
		assert.Equal(t, 0, info.TotalPages)
		assert.Empty(t, ctrl.Page())
	})

	t.Run("fetch failure surfaces the error", func(t *testing.T) {
		store := newFakeStore()
		store.failing = errors.New("store unreachable")
		ctrl := NewController[testRecord](store, 12)

		assert.Error(t, ctrl.Load(context.Background()))
	})

	t.Run("reload resets the page", func(t *testing.T) {
		ctrl, _ := loadedController(t, seq(25), 12)
		ctrl.SetPage(3)

		require.NoError(t, ctrl.Load(context.Background()))
		assert.Equal(t, 1, ctrl.Info().Page)
	})
}

func TestController_FailedCreateLeavesMirrorIntact(t *testing.T) {
	ctrl, store := loadedController(t, seq(5), 12)
	store.failing = errors.New("store unreachable")

	_, err := ctrl.Create(context.Background(), testRecord{Name: "new"})

	assert.Error(t, err)
	assert.Equal(t, 5, ctrl.Info().TotalItems)
	assert.Len(t, ctrl.Items(), 5)
}

func TestController_DeleteStepsBackFromEmptiedLastPage(t *testing.T) {
	// Two pages of six: page 2 holds a single record.
	ctrl, _ := loadedController(t, seq(7), 6)
	ctrl.SetPage(2)

	last := ctrl.Page()
	require.Len(t, last, 1)
	require.NoError(t, ctrl.Delete(context.Background(), last[0].ID))

	info := ctrl.Info()
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 6, info.TotalItems)
	assert.Len(t, ctrl.Page(), 6)
}

func TestController_DeleteOnFirstPageStaysPut(t *testing.T) {
	ctrl, _ := loadedController(t, seq(3), 6)

	require.NoError(t, ctrl.Delete(context.Background(), "a"))

	info := ctrl.Info()
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 2, info.TotalItems)
}

func TestController_Filter(t *testing.T) {
	named := WithDisplayName[testRecord](func(r testRecord) string { return r.Name })

	t.Run("matches case-insensitively", func(t *testing.T) {
		ctrl, _ := loadedController(t, []testRecord{
			{ID: "1", Name: "Ghana"},
			{ID: "2", Name: "Nigeria"},
			{ID: "3", Name: "ghanaian alliance"},
		}, 12, named)

		ctrl.SetFilter("GHA")
		page := ctrl.Page()
		require.Len(t, page, 2)
		assert.Equal(t, "Ghana", page[0].Name)
	})

	t.Run("resets the page when the filtered set shrinks below it", func(t *testing.T) {
		ctrl, _ := loadedController(t, seq(25), 12, named)
		ctrl.SetPage(3)

		ctrl.SetFilter("item a")

		info := ctrl.Info()
		assert.Equal(t, 1, info.Page)
		assert.Equal(t, 1, info.TotalItems)
	})

	t.Run("clearing the query restores the full view", func(t *testing.T) {
		ctrl, _ := loadedController(t, seq(25), 12, named)
		ctrl.SetFilter("item a")
		ctrl.SetFilter("")

		assert.Equal(t, 25, ctrl.Info().TotalItems)
	})
}

func TestController_CreateGrowsWindow(t *testing.T) {
	ctrl, _ := loadedController(t, seq(12), 12)
	require.Equal(t, 1, ctrl.Info().TotalPages)

	_, err := ctrl.Create(context.Background(), testRecord{Name: "thirteen"})

	require.NoError(t, err)
	assert.Equal(t, 2, ctrl.Info().TotalPages)
}

func TestController_UpdatePreservesOrder(t *testing.T) {
	ctrl, _ := loadedController(t, seq(3), 12)

	_, err := ctrl.Update(context.Background(), "b", testRecord{ID: "b", Name: "zz edited"})

	require.NoError(t, err)
	page := ctrl.Page()
	assert.Equal(t, []string{"a", "b", "c"}, ids(page))
	assert.Equal(t, "zz edited", page[1].Name)
}
