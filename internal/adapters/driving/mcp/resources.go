package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

const (
	catalogueURI   = "parallax://articles"
	articleURIBase = catalogueURI + "/"
)

// articleURI is the resource URI of one rendered locale.
func articleURI(id domain.ArticleID, l domain.Locale) string {
	return articleURIBase + string(id) + "/" + l.String()
}

// parseArticleURI is the inverse of articleURI. It rejects unknown
// locales and extra path segments.
func parseArticleURI(uri string) (domain.ArticleID, domain.Locale, bool) {
	rest, ok := strings.CutPrefix(uri, articleURIBase)
	if !ok {
		return "", 0, false
	}
	slug, code, ok := strings.Cut(rest, "/")
	if !ok || slug == "" || strings.Contains(code, "/") {
		return "", 0, false
	}
	l, err := domain.ParseLocale(code)
	if err != nil {
		return "", 0, false
	}
	return domain.ArticleID(slug), l, true
}

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         catalogueURI,
		Name:        "articles",
		Description: "Every article, newest first, with the URI of each available locale",
		MIMEType:    "application/json",
	}, s.handleArticlesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: articleURIBase + "{slug}/{locale}",
		Name:        "article-locale",
		Description: "Rendered HTML of one locale of an article",
		MIMEType:    "text/html",
	}, s.handleArticleLocaleResource)
}

// catalogueEntry is one element of the parallax://articles listing.
type catalogueEntry struct {
	ID          domain.ArticleID  `json:"id"`
	Title       map[string]string `json:"title"`
	PublishDate string            `json:"publish_date,omitempty"`
	Featured    bool              `json:"featured,omitempty"`
	Locales     []string          `json:"locales"`
	URIs        []string          `json:"uris"`
	Warnings    int               `json:"warnings,omitempty"`
}

func newCatalogueEntry(a *domain.MultiLocaleArticle) catalogueEntry {
	e := catalogueEntry{
		ID:       a.ID,
		Title:    make(map[string]string),
		Featured: a.Featured,
		Warnings: len(a.Warnings),
	}
	if !a.PublishDate.IsZero() {
		e.PublishDate = a.PublishDate.Format("2006-01-02")
	}
	for _, l := range a.AvailableLocales() {
		e.Locales = append(e.Locales, l.String())
		e.URIs = append(e.URIs, articleURI(a.ID, l))
		e.Title[l.String()] = a.Title.Get(l)
	}
	return e
}

func (s *Server) handleArticlesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	articles, err := s.ports.Catalogue.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	entries := make([]catalogueEntry, len(articles))
	for i, a := range articles {
		entries[i] = newCatalogueEntry(a)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalogue: %w", err)
	}
	return resourceText(req.Params.URI, "application/json", string(data)), nil
}

// handleArticleLocaleResource serves the rendered body of one locale. Any
// miss, including a locale the article lacks, is a resource-not-found.
func (s *Server) handleArticleLocaleResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	id, l, ok := parseArticleURI(uri)
	if !ok {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	a, err := s.article(ctx, id)
	if err != nil || !a.Available.Get(l) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	return resourceText(uri, "text/html", a.Body.Get(l).HTML), nil
}

func resourceText(uri, mime, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: mime, Text: text}},
	}
}
