package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

func TestTagsCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("tags")
	require.NoError(t, err)
	assert.Equal(t, "culture\nfood\n", out)

	out, err = execute("tags", "--json")
	require.NoError(t, err)
	var tags []string
	require.NoError(t, json.Unmarshal([]byte(out), &tags))
	assert.Equal(t, []string{"culture", "food"}, tags)
}

func TestStatsCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Articles: 2")
	assert.Contains(t, out, "Tags:     2")
	assert.Contains(t, out, "Failed:   0")
	assert.Contains(t, out, "2025-01  1")
	assert.Contains(t, out, "2024-10  1")

	out, err = execute("stats", "--json")
	require.NoError(t, err)
	var stats domain.CorpusStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats.TotalArticles)
	assert.NotEmpty(t, stats.IndexID)
}
