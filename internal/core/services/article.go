package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
	"github.com/custodia-labs/parallax/internal/core/ports/driving"
	"github.com/custodia-labs/parallax/internal/logger"
	"github.com/custodia-labs/parallax/internal/metrics"
	"github.com/custodia-labs/parallax/internal/render"
)

// Ensure ArticleService implements the interface.
var _ driving.ArticleService = (*ArticleService)(nil)

// Front matter date layouts accepted when metadata has no publish date.
var frontMatterDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ArticleService assembles multi-locale articles from a content source.
type ArticleService struct {
	source   driven.ContentSource
	renderer *render.Renderer
	config   domain.LoaderSettings

	cache   driven.RenderCache
	metrics *metrics.Metrics
	now     func() time.Time

	renders singleflight.Group
}

// NewArticleService creates a new article service.
// Zero loader settings fall back to the defaults.
func NewArticleService(
	source driven.ContentSource,
	renderer *render.Renderer,
	config domain.LoaderSettings,
) *ArticleService {
	defaults := domain.DefaultAppSettings().Loader
	if config.Workers <= 0 {
		config.Workers = defaults.Workers
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if renderer == nil {
		renderer = render.NewRenderer()
	}
	return &ArticleService{
		source:   source,
		renderer: renderer,
		config:   config,
		now:      time.Now,
	}
}

// SetRenderCache enables caching of rendered locales. Nil disables it.
func (s *ArticleService) SetRenderCache(cache driven.RenderCache) {
	s.cache = cache
}

// SetMetrics sets the metrics sink.
func (s *ArticleService) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// SetClock replaces the clock used for missing publish dates.
func (s *ArticleService) SetClock(now func() time.Time) {
	s.now = now
}

// localeOutcome is the result of loading one locale.
type localeOutcome struct {
	rendered *domain.RenderedLocale
	present  bool
	warning  *domain.LocaleWarning
}

// Load assembles one article from the requested locales.
// An empty locale list means every supported locale.
func (s *ArticleService) Load(
	ctx context.Context,
	id domain.ArticleID,
	locales []domain.Locale,
) (*domain.MultiLocaleArticle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	locales, err := requestedLocales(locales)
	if err != nil {
		return nil, err
	}

	exists, err := s.source.ArticleExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check article %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}

	meta, metaWarning := s.loadMeta(ctx, id)
	author := s.resolveAuthor(ctx, meta)

	captions, err := s.source.ReadCaptions(ctx, id)
	if err != nil {
		logger.Warn("captions for %s unreadable, using none: %v", id, err)
		captions = nil
	}
	digest := captionsDigest(captions)

	var outcomes [domain.NumLocales]localeOutcome
	g, gctx := errgroup.WithContext(ctx)
	for _, l := range locales {
		g.Go(func() error {
			out, err := s.loadLocale(gctx, id, l, render.CaptionTable(captions), digest)
			if err != nil {
				return err
			}
			outcomes[l] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load article %s: %w", id, err)
	}

	art := s.assemble(id, meta, author, outcomes)
	if metaWarning != nil {
		art.Warnings = append([]domain.LocaleWarning{*metaWarning}, art.Warnings...)
	}
	for _, w := range art.Warnings {
		s.metrics.LocaleWarning(string(w.Kind))
	}
	if err := art.Partial(); err != nil {
		logger.Debug("%v", err)
	}
	s.metrics.ArticleLoaded()

	return art, nil
}

// requestedLocales validates and dedupes a locale list. Empty means all.
func requestedLocales(locales []domain.Locale) ([]domain.Locale, error) {
	if len(locales) == 0 {
		return domain.AllLocales(), nil
	}
	var seen [domain.NumLocales]bool
	out := make([]domain.Locale, 0, len(locales))
	for _, l := range locales {
		if !l.IsValid() {
			return nil, fmt.Errorf("%w: locale #%d", domain.ErrUnsupportedLocale, l)
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out, nil
}

// loadLocale reads and renders one locale. Only context errors are
// returned; every other problem degrades the locale.
func (s *ArticleService) loadLocale(
	ctx context.Context,
	id domain.ArticleID,
	l domain.Locale,
	captions render.CaptionTable,
	digest []byte,
) (localeOutcome, error) {
	src, err := s.source.ReadLocale(ctx, id, l)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		return localeOutcome{}, nil
	case ctx.Err() != nil:
		return localeOutcome{}, ctx.Err()
	default:
		logger.Warn("read %s/%s: %v", id, l, err)
		return localeOutcome{warning: &domain.LocaleWarning{
			Locale: l,
			Kind:   domain.WarningUnreadableSource,
			Detail: err.Error(),
		}}, nil
	}

	rendered, err := s.render(ctx, id, l, src, captions, digest)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return localeOutcome{}, ctxErr
		}
		return localeOutcome{present: true, warning: &domain.LocaleWarning{
			Locale: l,
			Kind:   domain.WarningMalformedMarkup,
			Detail: err.Error(),
		}}, nil
	}

	return localeOutcome{rendered: rendered, present: true}, nil
}

// render returns the rendered locale, from the cache when possible.
// Concurrent renders of identical content share one pipeline run.
func (s *ArticleService) render(
	ctx context.Context,
	id domain.ArticleID,
	l domain.Locale,
	src []byte,
	captions render.CaptionTable,
	digest []byte,
) (*domain.RenderedLocale, error) {
	key := driven.RenderKey{ArticleID: id, Locale: l, ContentHash: contentHash(src, digest)}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("render cache get %s/%s: %v", id, l, err)
		}
		s.metrics.RenderCache(ok)
		if ok {
			return cached, nil
		}
	}

	flightKey := id.String() + "/" + l.String() + "/" + key.ContentHash
	// The shared render must not be cancelled by whichever caller started it.
	rctx := context.WithoutCancel(ctx)
	v, err, _ := s.renders.Do(flightKey, func() (any, error) {
		start := time.Now()
		job, err := s.renderer.Render(rctx, id, l, src, captions)
		if err != nil {
			return nil, err
		}
		s.metrics.Rendered(time.Since(start))

		rendered := renderedLocale(l, job)
		if s.cache != nil {
			if err := s.cache.Put(rctx, key, rendered); err != nil {
				logger.Warn("render cache put %s/%s: %v", id, l, err)
			}
		}
		return rendered, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.RenderedLocale), nil
}

// renderedLocale derives titles and excerpts from a finished job.
func renderedLocale(l domain.Locale, job *render.Job) *domain.RenderedLocale {
	title := strings.TrimSpace(job.Front.Title)
	if title == "" {
		for _, entry := range job.TOC {
			if entry.Level == 1 {
				title = entry.Title
				break
			}
		}
	}
	generated := title == ""
	if generated {
		title = domain.UntitledTitle(l)
	}

	excerpt := strings.TrimSpace(job.Front.Excerpt)
	if excerpt == "" {
		if plain := strings.TrimSpace(render.StripMarkup(string(job.Body))); plain != "" {
			excerpt = domain.GenerateExcerpt(plain)
		}
	}

	return &domain.RenderedLocale{
		Title:          title,
		TitleGenerated: generated,
		Excerpt:     excerpt,
		Content:     job.Content,
		TOC:         job.TOC,
		ReadingTime: job.ReadingTime,
		Source:      string(job.Body),
		Tags:        job.Front.Tags,
		Date:        job.Front.Date,
	}
}

// loadMeta reads shared metadata. Absent metadata yields defaults silently;
// unreadable metadata yields defaults and a warning.
func (s *ArticleService) loadMeta(ctx context.Context, id domain.ArticleID) (*domain.ArticleMeta, *domain.LocaleWarning) {
	meta, err := s.source.ReadMeta(ctx, id)
	switch {
	case err == nil && meta != nil:
		return meta, nil
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return &domain.ArticleMeta{}, nil
	default:
		logger.Warn("metadata for %s unreadable, using defaults: %v", id, err)
		return &domain.ArticleMeta{}, &domain.LocaleWarning{
			Locale: domain.DefaultLocale,
			Kind:   domain.WarningMalformedMeta,
			Detail: err.Error(),
		}
	}
}

// resolveAuthor looks up the referenced author. An unresolved reference
// yields the built-in default; the embedded author is used only when no
// reference is given.
func (s *ArticleService) resolveAuthor(ctx context.Context, meta *domain.ArticleMeta) domain.Author {
	var author domain.Author
	switch {
	case meta.AuthorID != "":
		if !s.lookupAuthor(ctx, meta.AuthorID, &author) {
			return domain.DefaultAuthor()
		}
	case meta.EmbeddedAuthor != nil:
		author = *meta.EmbeddedAuthor
	default:
		return domain.DefaultAuthor()
	}

	fillLocales(&author.Name)
	fillLocales(&author.Designation)
	fillLocales(&author.Bio)
	if author.Image == "" {
		author.Image = domain.DefaultAuthorImage
	}
	return author
}

func (s *ArticleService) lookupAuthor(ctx context.Context, authorID string, out *domain.Author) bool {
	a, err := s.source.ReadAuthor(ctx, authorID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("author %s unreadable: %v", authorID, err)
		} else {
			logger.Debug("author %s not found", authorID)
		}
		return false
	}
	*out = *a
	return true
}

// fillLocales fills empty locales along each locale's fallback chain.
func fillLocales(m *domain.Localized[string]) {
	filled := *m
	for _, l := range domain.AllLocales() {
		if filled.Get(l) != "" {
			continue
		}
		if v, _, ok := domain.FirstNonEmpty(*m, l.FallbackChain()); ok {
			filled.Set(l, v)
		}
	}
	*m = filled
}

// assemble builds the article from metadata and per-locale outcomes.
func (s *ArticleService) assemble(
	id domain.ArticleID,
	meta *domain.ArticleMeta,
	author domain.Author,
	outcomes [domain.NumLocales]localeOutcome,
) *domain.MultiLocaleArticle {
	art := &domain.MultiLocaleArticle{
		ID:          id,
		HeroImage:   meta.HeroImage,
		Author:      author,
		PublishDate: meta.PublishDate,
		Featured:    meta.Featured,
		RelatedIDs:  meta.RelatedIDs,
	}
	if art.HeroImage == "" {
		art.HeroImage = domain.DefaultHeroImage
	}

	var frontDate string
	for _, l := range domain.AllLocales() {
		out := outcomes[l]
		art.Title.Set(l, domain.UntitledTitle(l))
		art.GeneratedTitle.Set(l, true)
		art.Available.Set(l, out.present)
		if out.warning != nil {
			art.Warnings = append(art.Warnings, *out.warning)
		}

		tags := meta.Tags.Get(l)
		if r := out.rendered; r != nil {
			art.Title.Set(l, r.Title)
			art.GeneratedTitle.Set(l, r.TitleGenerated)
			art.Excerpt.Set(l, r.Excerpt)
			art.Body.Set(l, r.Content)
			art.TableOfContents.Set(l, r.TOC)
			art.ReadingTimeMinutes.Set(l, r.ReadingTime)
			art.Sources.Set(l, r.Source)
			if len(tags) == 0 {
				tags = r.Tags
			}
			if frontDate == "" {
				frontDate = r.Date
			}
		}
		art.Tags.Set(l, tags)
	}

	if art.PublishDate.IsZero() {
		art.PublishDate = parseFrontMatterDate(frontDate, s.now)
	}

	return art
}

func parseFrontMatterDate(v string, now func() time.Time) time.Time {
	v = strings.TrimSpace(v)
	for _, layout := range frontMatterDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return now()
}

// LoadAll loads every article with a bounded number of workers. Each
// article gets its own deadline; failures are collected, not returned.
func (s *ArticleService) LoadAll(ctx context.Context) ([]*domain.MultiLocaleArticle, []domain.LoadFailure, error) {
	ids, err := s.source.ListArticles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list articles: %w", err)
	}

	articles := make([]*domain.MultiLocaleArticle, len(ids))
	var (
		mu       sync.Mutex
		failures []domain.LoadFailure
	)

	g := new(errgroup.Group)
	g.SetLimit(s.config.Workers)
	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			art, err := s.loadWithDeadline(ctx, id)
			if err != nil {
				s.metrics.ArticleFailed()
				logger.Warn("article %s skipped: %v", id, err)
				mu.Lock()
				failures = append(failures, domain.LoadFailure{ID: id, Err: err})
				mu.Unlock()
				return nil
			}
			articles[i] = art
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	loaded := articles[:0]
	for _, art := range articles {
		if art != nil {
			loaded = append(loaded, art)
		}
	}
	sortFailures(failures, ids)

	logger.Info("loaded %d articles, %d failed", len(loaded), len(failures))
	return loaded, failures, nil
}

func (s *ArticleService) loadWithDeadline(ctx context.Context, id domain.ArticleID) (*domain.MultiLocaleArticle, error) {
	actx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	art, err := s.Load(actx, id, nil)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return nil, fmt.Errorf("%w: %s: no result within %s", domain.ErrArticleUnavailable, id, s.config.Timeout)
	}
	return art, err
}

// sortFailures orders failures like the listing they came from.
func sortFailures(failures []domain.LoadFailure, ids []domain.ArticleID) {
	pos := make(map[domain.ArticleID]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	for i := 1; i < len(failures); i++ {
		for j := i; j > 0 && pos[failures[j].ID] < pos[failures[j-1].ID]; j-- {
			failures[j], failures[j-1] = failures[j-1], failures[j]
		}
	}
}

// AvailableLocales returns the locales an article has sources for.
func (s *ArticleService) AvailableLocales(ctx context.Context, id domain.ArticleID) ([]domain.Locale, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	exists, err := s.source.ArticleExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}

	var out []domain.Locale
	for _, l := range domain.AllLocales() {
		_, err := s.source.ReadLocale(ctx, id, l)
		switch {
		case err == nil:
			out = append(out, l)
		case errors.Is(err, domain.ErrNotFound):
		default:
			return nil, fmt.Errorf("read %s/%s: %w", id, l, err)
		}
	}
	return out, nil
}

// Exists reports whether an article exists.
func (s *ArticleService) Exists(ctx context.Context, id domain.ArticleID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}
	return s.source.ArticleExists(ctx, id)
}

// Invalidate drops every cached render.
func (s *ArticleService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Purge(ctx); err != nil {
		return fmt.Errorf("purge render cache: %w", err)
	}
	logger.Debug("render cache purged")
	return nil
}

// contentHash keys a render by its source and the caption table digest.
// renderFormat is bumped whenever RenderedLocale gains a field, so that
// persisted cache entries from older builds miss.
const renderFormat = "2"

func contentHash(src, captionsDigest []byte) string {
	h := blake3.New()
	_, _ = h.Write([]byte(renderFormat))
	_, _ = h.Write(src)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(captionsDigest)
	return hex.EncodeToString(h.Sum(nil))
}

// captionsDigest hashes a caption table. encoding/json sorts map keys, so
// equal tables hash equally.
func captionsDigest(captions map[string]domain.Localized[string]) []byte {
	if len(captions) == 0 {
		return nil
	}
	data, err := json.Marshal(captions)
	if err != nil {
		return nil
	}
	sum := blake3.Sum256(data)
	return sum[:]
}
