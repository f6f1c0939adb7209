package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

var (
	articleLocale string
	articleJSON   bool
	listLimit     int
	relatedLimit  int
	popularLimit  int
	articleTag    string
	articleBody   bool
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Inspect articles",
	Long:  `Load single articles or list the corpus.`,
}

var articleGetCmd = &cobra.Command{
	Use:   "get <slug>",
	Short: "Show one article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleGet,
}

var articleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles, newest first",
	Args:  cobra.NoArgs,
	RunE:  runArticleList,
}

var articleRelatedCmd = &cobra.Command{
	Use:   "related <slug>",
	Short: "List articles related to one article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleRelated,
}

var articlePopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List featured articles, then the newest",
	Args:  cobra.NoArgs,
	RunE:  runArticlePopular,
}

func init() {
	articleCmd.PersistentFlags().StringVarP(&articleLocale, "locale", "l", "", "display locale (ja, en, zh-TW, zh-CN)")
	articleCmd.PersistentFlags().BoolVar(&articleJSON, "json", false, "output as JSON")

	articleGetCmd.Flags().BoolVar(&articleBody, "body", false, "print the rendered HTML body")
	articleListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of articles (0 = all)")
	articleListCmd.Flags().StringVarP(&articleTag, "tag", "t", "", "only articles with this tag")
	articleRelatedCmd.Flags().IntVarP(&relatedLimit, "limit", "n", 5, "maximum number of articles")
	articlePopularCmd.Flags().IntVarP(&popularLimit, "limit", "n", 5, "maximum number of articles")

	articleCmd.AddCommand(articleGetCmd)
	articleCmd.AddCommand(articleListCmd)
	articleCmd.AddCommand(articleRelatedCmd)
	articleCmd.AddCommand(articlePopularCmd)
	rootCmd.AddCommand(articleCmd)
}

func runArticleGet(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}
	locale, err := resolveLocale(articleLocale)
	if err != nil {
		return err
	}

	article, err := articleService.Load(cmd.Context(), domain.ArticleID(args[0]), nil)
	if err != nil {
		return fmt.Errorf("failed to load article: %w", err)
	}

	if articleJSON {
		return printJSON(cmd, article)
	}

	printArticle(cmd, article, locale)
	return nil
}

func printArticle(cmd *cobra.Command, a *domain.MultiLocaleArticle, l domain.Locale) {
	cmd.Println(localTitle(a, l))
	cmd.Println(strings.Repeat("=", 40))
	cmd.Printf("ID:           %s\n", a.ID)
	cmd.Printf("Published:    %s\n", a.PublishDate.Format(dateLayout))
	if name, _, ok := domain.FirstNonEmpty(a.Author.Name, l.FallbackChain()); ok {
		cmd.Printf("Author:       %s\n", name)
	}
	locales := make([]string, 0, domain.NumLocales)
	for _, loc := range a.AvailableLocales() {
		locales = append(locales, loc.String())
	}
	cmd.Printf("Locales:      %s\n", strings.Join(locales, ", "))
	if tags := a.Tags.Get(l); len(tags) > 0 {
		cmd.Printf("Tags:         %s\n", strings.Join(tags, ", "))
	}
	cmd.Printf("Reading time: %d min\n", a.ReadingTimeMinutes.Get(l))
	if a.Featured {
		cmd.Println("Featured:     yes")
	}
	cmd.Println()
	cmd.Println(a.Excerpt.Get(l))

	if toc := a.TableOfContents.Get(l); len(toc) > 0 {
		cmd.Println()
		cmd.Println("Contents:")
		printToc(cmd, toc.Nested(), 1)
	}

	if len(a.Warnings) > 0 {
		cmd.Println()
		cmd.Println("Warnings:")
		for _, w := range a.Warnings {
			cmd.Printf("  - %s %s: %s\n", w.Locale, w.Kind, w.Detail)
		}
	}

	if articleBody {
		cmd.Println()
		cmd.Println(a.Body.Get(l).HTML)
	}
}

func printToc(cmd *cobra.Command, nodes []*domain.TocNode, depth int) {
	for _, n := range nodes {
		cmd.Printf("%s- %s (#%s)\n", strings.Repeat("  ", depth), n.Entry.Title, n.Entry.ID)
		printToc(cmd, n.Children, depth+1)
	}
}

func runArticleList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureCatalogue(ctx); err != nil {
		return err
	}

	var (
		articles []*domain.MultiLocaleArticle
		err      error
	)
	switch {
	case articleTag != "":
		articles, err = catalogueService.ByTag(ctx, articleTag)
		if err == nil && listLimit > 0 && len(articles) > listLimit {
			articles = articles[:listLimit]
		}
	case listLimit > 0:
		articles, err = catalogueService.Latest(ctx, listLimit)
	default:
		articles, err = catalogueService.List(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list articles: %w", err)
	}
	return outputArticles(cmd, articles)
}

func runArticleRelated(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := ensureCatalogue(ctx); err != nil {
		return err
	}
	articles, err := catalogueService.Related(ctx, domain.ArticleID(args[0]), relatedLimit)
	if err != nil {
		return fmt.Errorf("failed to find related articles: %w", err)
	}
	return outputArticles(cmd, articles)
}

func runArticlePopular(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureCatalogue(ctx); err != nil {
		return err
	}
	articles, err := catalogueService.Popular(ctx, popularLimit)
	if err != nil {
		return fmt.Errorf("failed to list popular articles: %w", err)
	}
	return outputArticles(cmd, articles)
}

// articleSummary is the JSON shape of an article in listings.
type articleSummary struct {
	ID          domain.ArticleID `json:"id"`
	Title       string           `json:"title"`
	PublishDate string           `json:"publishDate"`
	Tags        []string         `json:"tags,omitempty"`
	Featured    bool             `json:"featured,omitempty"`
}

func outputArticles(cmd *cobra.Command, articles []*domain.MultiLocaleArticle) error {
	locale, err := resolveLocale(articleLocale)
	if err != nil {
		return err
	}
	if articleJSON {
		out := make([]articleSummary, len(articles))
		for i, a := range articles {
			out[i] = articleSummary{
				ID:          a.ID,
				Title:       localTitle(a, locale),
				PublishDate: a.PublishDate.Format(dateLayout),
				Tags:        a.Tags.Get(locale),
				Featured:    a.Featured,
			}
		}
		return printJSON(cmd, out)
	}
	printArticleList(cmd, articles, locale)
	return nil
}
