package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

func TestArticleCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range articleCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"get", "list", "related", "popular"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestArticleGetCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("article", "get", "rice", "--locale", "en")

	require.NoError(t, err)
	assert.Contains(t, out, "Rice in Japan")
	assert.Contains(t, out, "Published:    2024-10-01")
	assert.Contains(t, out, "Locales:      ja, en")
	assert.Contains(t, out, "Tags:         food, culture")
	assert.Contains(t, out, "Featured:     yes")
	assert.Contains(t, out, "(#heading-0)")
}

func TestArticleGetCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("article", "get", "k8s", "--json")

	require.NoError(t, err)
	var a domain.MultiLocaleArticle
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, domain.ArticleID("k8s"), a.ID)
	assert.Equal(t, "Kubernetes Basics", a.Title.Get(domain.LocaleEN))
	assert.Equal(t, "Untitled (ja)", a.Title.Get(domain.LocaleJA))
}

func TestArticleGetCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("article", "get", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("article", "list", "-l", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] 2025-01-05  Kubernetes Basics  (k8s)")
	assert.Contains(t, out, "* [2] 2024-10-01  Rice in Japan  (rice)")

	out, err = execute("article", "list", "--tag", "food", "-l", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "Rice in Japan")
	assert.NotContains(t, out, "Kubernetes")

	out, err = execute("article", "list", "-n", "1", "--json")
	require.NoError(t, err)
	var list []articleSummary
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, domain.ArticleID("k8s"), list[0].ID)
}

func TestArticlePopularCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("article", "popular", "--json")

	require.NoError(t, err)
	var list []articleSummary
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, domain.ArticleID("rice"), list[0].ID, "featured first")
	assert.True(t, list[0].Featured)
}

func TestArticleRelatedCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("article", "related", "rice")
	require.NoError(t, err)
	assert.Contains(t, out, "No articles found.")

	_, err = execute("article", "related", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleListCmd_NoCatalogue(t *testing.T) {
	SetServices(Services{})

	_, err := execute("article", "list")
	assert.ErrorContains(t, err, "catalogue service not configured")
}
