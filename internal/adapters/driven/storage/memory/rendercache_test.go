package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
)

func TestRenderCache_PutGet(t *testing.T) {
	ctx := context.Background()
	c := NewRenderCache()
	key := driven.RenderKey{ArticleID: "rice", Locale: domain.LocaleJA, ContentHash: "abc"}

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, key, &domain.RenderedLocale{Title: "米", ReadingTime: 2}))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "米", got.Title)

	// Other hashes of the same locale are distinct entries.
	other := key
	other.ContentHash = "def"
	_, ok, err = c.Get(ctx, other)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenderCache_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewRenderCache()
	key := driven.RenderKey{ArticleID: "a", Locale: domain.LocaleEN}
	require.NoError(t, c.Put(ctx, key, &domain.RenderedLocale{Title: "original"}))

	got, _, _ := c.Get(ctx, key)
	got.Title = "changed"

	again, _, _ := c.Get(ctx, key)
	assert.Equal(t, "original", again.Title)
}

func TestRenderCache_PurgeAndLen(t *testing.T) {
	ctx := context.Background()
	c := NewRenderCache()
	for _, l := range domain.AllLocales() {
		require.NoError(t, c.Put(ctx, driven.RenderKey{ArticleID: "a", Locale: l}, &domain.RenderedLocale{}))
	}
	require.NoError(t, c.Put(ctx, driven.RenderKey{ArticleID: "b"}, nil))

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NumLocales, n)

	require.NoError(t, c.Purge(ctx))
	n, err = c.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
