package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "studio-backend/pkg/errors"
)

func TestRefs(t *testing.T) {
	tests := []struct {
		name string
		list []string
		want []string
	}{
		{name: "sentinel is empty", list: []string{""}, want: []string{}},
		{name: "nil is empty", list: nil, want: []string{}},
		{name: "plain list passes through", list: []string{"T-1", "T-2"}, want: []string{"T-1", "T-2"}},
		{name: "stray empties dropped", list: []string{"T-1", ""}, want: []string{"T-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Refs(tt.list))
		})
	}
}

func TestAddReference(t *testing.T) {
	t.Run("appends to plain list", func(t *testing.T) {
		got, err := AddReference([]string{"T-1"}, "T-2")
		require.NoError(t, err)
		assert.Equal(t, []string{"T-1", "T-2"}, got)
	})

	t.Run("replaces sentinel", func(t *testing.T) {
		got, err := AddReference(Sentinel(), "L-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"L-1"}, got)
	})

	t.Run("duplicate is an inconsistency", func(t *testing.T) {
		_, err := AddReference([]string{"T-1"}, "T-1")
		assert.True(t, apperrors.IsInconsistentReference(err))
	})

	t.Run("empty ref rejected", func(t *testing.T) {
		_, err := AddReference([]string{"T-1"}, "")
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestRemoveReference(t *testing.T) {
	t.Run("removes from list", func(t *testing.T) {
		got, err := RemoveReference([]string{"T-1", "T-2"}, "T-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"T-2"}, got)
	})

	t.Run("last removal leaves sentinel", func(t *testing.T) {
		got, err := RemoveReference([]string{"T-1"}, "T-1")
		require.NoError(t, err)
		assert.Equal(t, Sentinel(), got)
	})

	t.Run("absent ref is an inconsistency", func(t *testing.T) {
		_, err := RemoveReference([]string{"T-1"}, "T-9")
		assert.True(t, apperrors.IsInconsistentReference(err))
	})

	t.Run("removal from sentinel is an inconsistency", func(t *testing.T) {
		_, err := RemoveReference(Sentinel(), "T-1")
		assert.True(t, apperrors.IsInconsistentReference(err))
	})
}

func TestAddRemoveRoundTrip(t *testing.T) {
	list := Sentinel()

	list, err := AddReference(list, "L-1")
	require.NoError(t, err)
	list, err = AddReference(list, "L-2")
	require.NoError(t, err)
	assert.True(t, ContainsReference(list, "L-1"))

	list, err = RemoveReference(list, "L-1")
	require.NoError(t, err)
	list, err = RemoveReference(list, "L-2")
	require.NoError(t, err)

	assert.True(t, IsSentinel(list))
	assert.Empty(t, Refs(list))
}
