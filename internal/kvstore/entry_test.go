package kvstore_test

import (
	"errors"
	"testing"

	"github.com/nikolayk812/shopcart/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Theme string   `json:"theme"`
	Tags  []string `json:"tags"`
}

func TestEntry_GetDefault(t *testing.T) {
	entry := kvstore.NewEntry(kvstore.NewMemory(), "settings", func() settings {
		return settings{Theme: "dark"}
	})

	got, err := entry.Get(t.Context())
	require.NoError(t, err)
	assert.Equal(t, settings{Theme: "dark"}, got)
}

func TestEntry_NilDefaultIsZero(t *testing.T) {
	entry := kvstore.NewEntry[int](kvstore.NewMemory(), "n", nil)

	got, err := entry.Get(t.Context())
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestEntry_SetObservedByNextGet(t *testing.T) {
	ctx := t.Context()
	entry := kvstore.NewEntry(kvstore.NewMemory(), "settings", func() settings { return settings{} })

	require.NoError(t, entry.Set(ctx, func(prev settings) settings {
		prev.Theme = "light"
		prev.Tags = append(prev.Tags, "a")
		return prev
	}))

	require.NoError(t, entry.Set(ctx, func(prev settings) settings {
		prev.Tags = append(prev.Tags, "b")
		return prev
	}))

	got, err := entry.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings{Theme: "light", Tags: []string{"a", "b"}}, got)
}

func TestEntry_ModifyErrorKeepsValue(t *testing.T) {
	ctx := t.Context()
	errRejected := errors.New("rejected")
	entry := kvstore.NewEntry[int](kvstore.NewMemory(), "n", nil)

	require.NoError(t, entry.Set(ctx, func(int) int { return 41 }))

	err := entry.Modify(ctx, func(prev int) (int, error) {
		return prev + 1, errRejected
	})
	require.ErrorIs(t, err, errRejected)

	got, err := entry.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 41, got)
}

func TestEntry_CorruptValue(t *testing.T) {
	ctx := t.Context()
	store := kvstore.NewMemory()

	require.NoError(t, store.Update(ctx, "n", func([]byte, bool) ([]byte, error) {
		return []byte(`"not a number"`), nil
	}))

	entry := kvstore.NewEntry[int](store, "n", nil)

	_, err := entry.Get(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json.Unmarshal[n]")
}
