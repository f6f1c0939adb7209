package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

const dateLayout = "2006-01-02"

// resolveLocale parses a --locale flag. Empty means the configured default.
func resolveLocale(code string) (domain.Locale, error) {
	if code == "" {
		if settingsService != nil {
			if settings, err := settingsService.Get(); err == nil {
				return settings.DefaultLocale, nil
			}
		}
		return domain.DefaultLocale, nil
	}
	return domain.ParseLocale(code)
}

// parseDate parses a YYYY-MM-DD flag. Empty is the zero time.
func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --%s %q: expected YYYY-MM-DD", domain.ErrInvalidInput, flag, value)
	}
	return t, nil
}

// localTitle returns the article title along the locale's fallback chain.
func localTitle(a *domain.MultiLocaleArticle, l domain.Locale) string {
	if a == nil {
		return ""
	}
	if title, _, ok := domain.FirstNonEmpty(a.Title, l.FallbackChain()); ok {
		return title
	}
	return string(a.ID)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printArticleList prints one line per article.
func printArticleList(cmd *cobra.Command, articles []*domain.MultiLocaleArticle, l domain.Locale) {
	if len(articles) == 0 {
		cmd.Println("No articles found.")
		return
	}
	for i, a := range articles {
		marker := " "
		if a.Featured {
			marker = "*"
		}
		cmd.Printf("%s [%d] %s  %s  (%s)\n", marker, i+1, a.PublishDate.Format(dateLayout), localTitle(a, l), a.ID)
		if tags := a.Tags.Get(l); len(tags) > 0 {
			cmd.Printf("      Tags: %s\n", strings.Join(tags, ", "))
		}
	}
}
