package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

func TestSource_PutAndRead(t *testing.T) {
	ctx := context.Background()
	s := NewSource()
	s.Put("b", Article{Locales: map[domain.Locale]string{domain.LocaleJA: "本文"}})
	s.Put("a", Article{Locales: map[domain.Locale]string{domain.LocaleEN: "body"}})

	ids, err := s.ListArticles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ArticleID{"b", "a"}, ids)

	src, err := s.ReadLocale(ctx, "a", domain.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, "body", string(src))
	assert.Equal(t, 1, s.Reads())

	_, err = s.ReadLocale(ctx, "a", domain.LocaleJA)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.ReadLocale(ctx, "missing", domain.LocaleJA)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSource_Remove(t *testing.T) {
	s := NewSource()
	s.Put("a", Article{})
	s.Put("b", Article{})
	s.Remove("a")
	s.Remove("zzz")

	ids, err := s.ListArticles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ArticleID{"b"}, ids)

	ok, err := s.ArticleExists(context.Background(), "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSource_Meta(t *testing.T) {
	ctx := context.Background()
	s := NewSource()
	s.Put("none", Article{})
	s.Put("bad", Article{MetaErr: errors.New("syntax error")})
	s.Put("ok", Article{Meta: &domain.ArticleMeta{Featured: true}})

	_, err := s.ReadMeta(ctx, "none")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.ReadMeta(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	meta, err := s.ReadMeta(ctx, "ok")
	require.NoError(t, err)
	assert.True(t, meta.Featured)
}

func TestSource_Authors(t *testing.T) {
	s := NewSource()
	s.PutAuthor(domain.Author{ID: "kenji", Name: domain.Uniform("Kenji")})

	a, err := s.ReadAuthor(context.Background(), "kenji")
	require.NoError(t, err)
	assert.Equal(t, "Kenji", a.Name.Get(domain.LocaleEN))

	_, err = s.ReadAuthor(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSource_ReadDelayHonoursContext(t *testing.T) {
	s := NewSource()
	s.Put("slow", Article{Locales: map[domain.Locale]string{domain.LocaleJA: "x"}})
	s.SetReadDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.ReadLocale(ctx, "slow", domain.LocaleJA)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
