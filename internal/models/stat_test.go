package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStatIcon(t *testing.T) {
	t.Run("known identifiers resolve to themselves", func(t *testing.T) {
		for icon := range statIcons {
			assert.Equal(t, icon, ResolveStatIcon(string(icon)))
		}
	})

	t.Run("unknown identifiers resolve to the fallback", func(t *testing.T) {
		for _, raw := range []string{"", "sparkles", "FaCrown"} {
			assert.Equal(t, IconFallback, ResolveStatIcon(raw))
		}
	})
}

func TestNewStat(t *testing.T) {
	t.Run("creates stat with resolved icon", func(t *testing.T) {
		stat, err := NewStat("globe", "Countries", "120+", 1)

		require.NoError(t, err)
		assert.NotEmpty(t, stat.ID)
		assert.Equal(t, IconGlobe, stat.Icon)
	})

	t.Run("unknown icon falls back instead of failing", func(t *testing.T) {
		stat, err := NewStat("nonsense", "Countries", "120+", 1)

		require.NoError(t, err)
		assert.Equal(t, IconFallback, stat.Icon)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := NewStat("globe", " ", "120+", 1)
		assert.ErrorIs(t, err, ErrStatTitleRequired)
	})

	t.Run("rejects blank value", func(t *testing.T) {
		_, err := NewStat("globe", "Countries", "", 1)
		assert.ErrorIs(t, err, ErrStatValueRequired)
	})
}
