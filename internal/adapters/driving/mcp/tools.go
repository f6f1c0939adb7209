package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

const defaultToolLimit = 10

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query  string   `json:"query" jsonschema:"the search query; empty lists every article"`
	Locale string   `json:"locale,omitempty" jsonschema:"reader locale: ja, en, zh-TW or zh-CN (default ja)"`
	Tags   []string `json:"tags,omitempty" jsonschema:"only articles carrying any of these tags"`
	Sort   string   `json:"sort,omitempty" jsonschema:"relevance (default), date or title"`
	Limit  int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	Offset int      `json:"offset,omitempty" jsonschema:"number of results to skip"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ArticleID     string            `json:"article_id"`
	Title         string            `json:"title"`
	Excerpt       string            `json:"excerpt,omitempty"`
	PublishDate   string            `json:"publish_date,omitempty"`
	Score         float64           `json:"score"`
	MatchedFields []string          `json:"matched_fields,omitempty"`
	Highlights    map[string]string `json:"highlights,omitempty"`
}

// CompareInput is the input schema for the compare tool.
type CompareInput struct {
	Slug  string `json:"slug" jsonschema:"the article slug"`
	Left  string `json:"left,omitempty" jsonschema:"left-hand locale (default ja)"`
	Right string `json:"right,omitempty" jsonschema:"right-hand locale (default en)"`
}

// CompareOutput is the output schema for the compare tool.
type CompareOutput struct {
	ArticleID  string      `json:"article_id"`
	Left       string      `json:"left"`
	Right      string      `json:"right"`
	LeftTitle  string      `json:"left_title"`
	RightTitle string      `json:"right_title"`
	Rows       []RowOutput `json:"rows"`
	RightOnly  []string    `json:"right_only,omitempty"`
}

// RowOutput is one aligned sentence pair; cells are rendered HTML.
type RowOutput struct {
	Marker       string `json:"marker"`
	Left         string `json:"left"`
	Right        string `json:"right"`
	LeftTag      string `json:"left_tag"`
	RightTag     string `json:"right_tag,omitempty"`
	RightMissing bool   `json:"right_missing,omitempty"`
}

// GetArticleInput is the input schema for the get_article tool.
type GetArticleInput struct {
	Slug        string `json:"slug" jsonschema:"the article slug"`
	Locale      string `json:"locale,omitempty" jsonschema:"locale to return (default ja)"`
	IncludeBody bool   `json:"include_body,omitempty" jsonschema:"include the rendered HTML body"`
}

// ArticleOutput is the output schema for the get_article tool.
type ArticleOutput struct {
	ArticleID   string          `json:"article_id"`
	Locale      string          `json:"locale"`
	Title       string          `json:"title"`
	Excerpt     string          `json:"excerpt"`
	Author      string          `json:"author"`
	PublishDate string          `json:"publish_date"`
	Tags        []string        `json:"tags,omitempty"`
	Featured    bool            `json:"featured,omitempty"`
	ReadingTime int             `json:"reading_time_minutes"`
	Available   []string        `json:"available_locales"`
	Contents    []TocOutput     `json:"contents,omitempty"`
	Related     []string        `json:"related,omitempty"`
	Warnings    []WarningOutput `json:"warnings,omitempty"`
	Body        string          `json:"body,omitempty"`
}

// TocOutput is one heading of the table of contents.
type TocOutput struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Title string `json:"title"`
}

// WarningOutput is a degraded locale.
type WarningOutput struct {
	Locale string `json:"locale"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// ListTagsInput is the input schema for the list_tags tool.
type ListTagsInput struct{}

// ListTagsOutput is the output schema for the list_tags tool.
type ListTagsOutput struct {
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Fuzzy search across articles in every locale; lower scores are better",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_article",
		Description: "Get one article in a locale, with metadata and table of contents",
	}, s.handleGetArticle)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_tags",
		Description: "List every tag used by any article",
	}, s.handleListTags)

	if s.ports.Compare != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "compare",
			Description: "Align two translations of an article sentence by sentence",
		}, s.handleCompare)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	locale, err := parseLocale(input.Locale, domain.DefaultLocale)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	mode, err := domain.ParseSortMode(input.Sort)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultToolLimit
	}

	opts := domain.SearchOptions{
		Locale: locale,
		Tags:   input.Tags,
		Sort:   mode,
		Limit:  limit,
		Offset: input.Offset,
	}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		out := SearchResultOutput{
			ArticleID:     string(results[i].ArticleID),
			Score:         results[i].Score,
			MatchedFields: results[i].MatchedFields,
			Highlights:    results[i].Highlights,
		}
		if a := results[i].Article; a != nil {
			out.Title = localized(a.Title, locale)
			out.Excerpt = localized(a.Excerpt, locale)
			out.PublishDate = a.PublishDate.Format("2006-01-02")
		}
		output.Results[i] = out
	}

	return nil, output, nil
}

// handleGetArticle handles the get_article tool invocation.
func (s *Server) handleGetArticle(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetArticleInput,
) (*mcp.CallToolResult, ArticleOutput, error) {
	if input.Slug == "" {
		return nil, ArticleOutput{}, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}
	locale, err := parseLocale(input.Locale, domain.DefaultLocale)
	if err != nil {
		return nil, ArticleOutput{}, err
	}

	article, err := s.article(ctx, domain.ArticleID(input.Slug))
	if err != nil {
		return nil, ArticleOutput{}, err
	}

	return nil, articleOutput(article, locale, input.IncludeBody), nil
}

// article reads from the index snapshot, falling back to a direct load for
// articles added since the last rebuild.
func (s *Server) article(ctx context.Context, id domain.ArticleID) (*domain.MultiLocaleArticle, error) {
	article, err := s.ports.Catalogue.Get(ctx, id)
	if err == nil {
		return article, nil
	}
	if s.ports.Articles != nil && (errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrIndexNotBuilt)) {
		return s.ports.Articles.Load(ctx, id, nil)
	}
	return nil, err
}

func articleOutput(a *domain.MultiLocaleArticle, l domain.Locale, includeBody bool) ArticleOutput {
	out := ArticleOutput{
		ArticleID:   string(a.ID),
		Locale:      l.String(),
		Title:       localized(a.Title, l),
		Excerpt:     localized(a.Excerpt, l),
		Author:      localized(a.Author.Name, l),
		PublishDate: a.PublishDate.Format("2006-01-02"),
		Tags:        a.Tags.Get(l),
		Featured:    a.Featured,
		ReadingTime: a.ReadingTimeMinutes.Get(l),
	}
	for _, avail := range a.AvailableLocales() {
		out.Available = append(out.Available, avail.String())
	}
	for _, e := range a.TableOfContents.Get(l) {
		out.Contents = append(out.Contents, TocOutput{ID: e.ID, Level: e.Level, Title: e.Title})
	}
	for _, id := range a.RelatedIDs {
		out.Related = append(out.Related, string(id))
	}
	for _, w := range a.Warnings {
		out.Warnings = append(out.Warnings, WarningOutput{Locale: w.Locale.String(), Kind: string(w.Kind), Detail: w.Detail})
	}
	if includeBody {
		out.Body = a.Body.Get(l).HTML
	}
	return out
}

// handleListTags handles the list_tags tool invocation.
func (s *Server) handleListTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListTagsInput,
) (*mcp.CallToolResult, ListTagsOutput, error) {
	tags, err := s.ports.Search.Tags(ctx)
	if err != nil {
		return nil, ListTagsOutput{}, err
	}
	sorted := append([]string{}, tags...)
	sort.Strings(sorted)
	return nil, ListTagsOutput{Tags: sorted, Count: len(sorted)}, nil
}

// handleCompare handles the compare tool invocation.
func (s *Server) handleCompare(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompareInput,
) (*mcp.CallToolResult, CompareOutput, error) {
	if input.Slug == "" {
		return nil, CompareOutput{}, fmt.Errorf("%w: slug is required", domain.ErrInvalidInput)
	}
	left, err := parseLocale(input.Left, domain.LocaleJA)
	if err != nil {
		return nil, CompareOutput{}, err
	}
	right, err := parseLocale(input.Right, domain.LocaleEN)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	cmp, err := s.ports.Compare.Compare(ctx, domain.ArticleID(input.Slug), left, right)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	out := CompareOutput{
		ArticleID:  string(cmp.ArticleID),
		Left:       cmp.Left.String(),
		Right:      cmp.Right.String(),
		LeftTitle:  cmp.Title[0],
		RightTitle: cmp.Title[1],
		Rows:       make([]RowOutput, len(cmp.Rows)),
		RightOnly:  cmp.RightOnly,
	}
	for i, r := range cmp.Rows {
		out.Rows[i] = RowOutput{
			Marker:       r.MarkerID,
			Left:         r.LeftText,
			Right:        r.RightText,
			LeftTag:      r.LeftTag.String(),
			RightTag:     r.RightTag.String(),
			RightMissing: r.RightMissing,
		}
	}
	return nil, out, nil
}

func parseLocale(code string, def domain.Locale) (domain.Locale, error) {
	if code == "" {
		return def, nil
	}
	return domain.ParseLocale(code)
}

// localized returns the value for l, falling back along its chain.
func localized(m domain.Localized[string], l domain.Locale) string {
	v, _, _ := domain.FirstNonEmpty(m, l.FallbackChain())
	return v
}
