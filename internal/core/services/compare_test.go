package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentmem "github.com/custodia-labs/parallax/internal/adapters/driven/content/memory"
	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/metrics"
)

func TestCompareService_Compare(t *testing.T) {
	svc := NewCompareService(newCorpus(), nil)

	cmp, err := svc.Compare(context.Background(), "rice", domain.LocaleJA, domain.LocaleEN)
	require.NoError(t, err)

	assert.Equal(t, domain.ArticleID("rice"), cmp.ArticleID)
	assert.Equal(t, [2]string{"日本の米", "Rice in Japan"}, cmp.Title)
	require.Len(t, cmp.Rows, 3)

	ids := []string{cmp.Rows[0].MarkerID, cmp.Rows[1].MarkerID, cmp.Rows[2].MarkerID}
	assert.Equal(t, []string{"s1", "s2", "s3"}, ids, "rows follow the left locale")

	assert.Equal(t, domain.TagH1, cmp.Rows[0].LeftTag)
	assert.Equal(t, domain.TagH1, cmp.Rows[0].RightTag)
	assert.Contains(t, cmp.Rows[0].LeftText, "<h1")
	assert.Contains(t, cmp.Rows[1].RightText, "<p>Rice is the staple food.</p>")

	missing := cmp.Rows[2]
	assert.True(t, missing.RightMissing)
	assert.Equal(t, "", missing.RightText)
	assert.Equal(t, domain.TagNone, missing.RightTag)
	assert.Contains(t, missing.LeftText, `data-image-component="true"`, "cells get the media rewrite")
	assert.Contains(t, missing.LeftText, `data-alt="秋の田んぼ"`)

	assert.Equal(t, []string{"s9"}, cmp.RightOnly)
}

func TestCompareService_ListItemTags(t *testing.T) {
	svc := NewCompareService(newCorpus(), nil)

	cmp, err := svc.Compare(context.Background(), "grammar", domain.LocaleEN, domain.LocaleJA)
	require.NoError(t, err)
	require.Len(t, cmp.Rows, 2)
	assert.Equal(t, domain.TagH2, cmp.Rows[0].LeftTag)
	assert.Equal(t, domain.TagListItem, cmp.Rows[1].LeftTag)
	assert.Equal(t, domain.TagListItem, cmp.Rows[1].RightTag)
	assert.Empty(t, cmp.RightOnly)
}

func TestCompareService_Errors(t *testing.T) {
	svc := NewCompareService(newCorpus(), nil)
	ctx := context.Background()

	_, err := svc.Compare(ctx, "nope", domain.LocaleJA, domain.LocaleEN)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Compare(ctx, "k8s", domain.LocaleJA, domain.LocaleEN)
	assert.ErrorIs(t, err, domain.ErrNotFound, "both locales must exist")

	_, err = svc.Compare(ctx, "rice", domain.LocaleJA, domain.Locale(9))
	assert.ErrorIs(t, err, domain.ErrUnsupportedLocale)
}

func TestCompareService_MalformedFrontMatterAlignsRawSource(t *testing.T) {
	src := contentmem.NewSource()
	src.Put("p", contentmem.Article{Locales: map[domain.Locale]string{
		domain.LocaleJA: "---\ntitle: open\n<!-- s1 -->\n一",
		domain.LocaleEN: "<!-- s1 -->\none",
	}})
	svc := NewCompareService(src, nil)

	cmp, err := svc.Compare(context.Background(), "p", domain.LocaleJA, domain.LocaleEN)
	require.NoError(t, err)
	assert.Equal(t, domain.UntitledTitle(domain.LocaleJA), cmp.Title[0])
	require.Len(t, cmp.Rows, 1)
	assert.False(t, cmp.Rows[0].RightMissing)
}

func TestCompareService_IdempotentAndConcurrent(t *testing.T) {
	svc := NewCompareService(newCorpus(), nil)
	m := metrics.New()
	svc.SetMetrics(m)
	ctx := context.Background()

	want, err := svc.Compare(ctx, "rice", domain.LocaleJA, domain.LocaleEN)
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]*domain.Comparison, 6)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = svc.Compare(ctx, "rice", domain.LocaleJA, domain.LocaleEN)
		}(i)
	}
	wg.Wait()

	for _, c := range got {
		assert.Equal(t, want, c)
	}
}
