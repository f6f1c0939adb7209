package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

var (
	searchLimit  int
	searchOffset int
	searchLocale string
	searchTags   []string
	searchSort   string
	searchFrom   string
	searchTo     string
	searchJSON   bool
	searchStats  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search articles in every locale",
	Long: `Performs a typo-tolerant fuzzy search over titles, excerpts, bodies
and tags of every locale. Lower scores are better matches.

An empty query lists every article with a score of 0, which is useful
with --tag, --from/--to and --sort date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (0 = all)")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "number of results to skip")
	searchCmd.Flags().StringVarP(&searchLocale, "locale", "l", "", "reader locale (ja, en, zh-TW, zh-CN)")
	searchCmd.Flags().StringSliceVarP(&searchTags, "tag", "t", nil, "only articles with any of these tags")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "", "sort order: relevance, date or title")
	searchCmd.Flags().StringVar(&searchFrom, "from", "", "earliest publish date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "latest publish date (YYYY-MM-DD)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchStats, "stats", false, "print result statistics instead of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	if searchService == nil {
		return fmt.Errorf("search service not configured")
	}

	opts, err := searchOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if searchStats {
		stats, err := searchService.Stats(ctx, query, opts)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputSearchStats(cmd, stats)
	}

	results, err := searchService.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results, opts.Locale)
}

func searchOptions(cmd *cobra.Command) (domain.SearchOptions, error) {
	locale, err := resolveLocale(searchLocale)
	if err != nil {
		return domain.SearchOptions{}, err
	}
	mode, err := domain.ParseSortMode(searchSort)
	if err != nil {
		return domain.SearchOptions{}, err
	}
	from, err := parseDate("from", searchFrom)
	if err != nil {
		return domain.SearchOptions{}, err
	}
	to, err := parseDate("to", searchTo)
	if err != nil {
		return domain.SearchOptions{}, err
	}

	limit := searchLimit
	if !cmd.Flags().Changed("limit") && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			limit = settings.Search.Limit
		}
	}

	return domain.SearchOptions{
		Locale: locale,
		Tags:   searchTags,
		Sort:   mode,
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: searchOffset,
	}, nil
}

// searchResultJSON is the JSON shape of a result: the article is
// summarised rather than dumped with every rendered body.
type searchResultJSON struct {
	ArticleID     domain.ArticleID  `json:"articleId"`
	Title         string            `json:"title"`
	Score         float64           `json:"score"`
	PublishDate   string            `json:"publishDate,omitempty"`
	MatchedFields []string          `json:"matchedFields,omitempty"`
	Highlights    map[string]string `json:"highlights,omitempty"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	locale, _ := resolveLocale(searchLocale)
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{
			ArticleID:     r.ArticleID,
			Title:         localTitle(r.Article, locale),
			Score:         r.Score,
			MatchedFields: r.MatchedFields,
			Highlights:    r.Highlights,
		}
		if r.Article != nil {
			out[i].PublishDate = r.Article.PublishDate.Format(dateLayout)
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult, locale domain.Locale) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := localTitle(results[i].Article, locale)
		if title == "" {
			title = string(results[i].ArticleID)
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, results[i].Score)
		if a := results[i].Article; a != nil {
			cmd.Printf("      %s  %s\n", a.ID, a.PublishDate.Format(dateLayout))
		}
		if snippet := firstHighlight(results[i]); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	return nil
}

// firstHighlight returns the highlight of the best matched field.
func firstHighlight(r domain.SearchResult) string {
	for _, field := range r.MatchedFields {
		if h, ok := r.Highlights[field]; ok {
			return h
		}
	}
	if len(r.Highlights) == 0 {
		return ""
	}
	fields := make([]string, 0, len(r.Highlights))
	for f := range r.Highlights {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return r.Highlights[fields[0]]
}

func outputSearchStats(cmd *cobra.Command, stats domain.SearchStats) error {
	if searchJSON {
		return printJSON(cmd, stats)
	}
	cmd.Printf("Total:         %d\n", stats.Total)
	cmd.Printf("Average score: %.3f\n", stats.AverageScore)
	if len(stats.TopFields) > 0 {
		parts := make([]string, len(stats.TopFields))
		for i, f := range stats.TopFields {
			parts[i] = fmt.Sprintf("%s (%d)", f.Field, f.Count)
		}
		cmd.Printf("Top fields:    %s\n", strings.Join(parts, ", "))
	}
	return nil
}
