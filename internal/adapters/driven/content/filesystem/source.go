// Package filesystem reads articles from a content directory:
//
//	posts/<slug>/<locale>.md
//	posts/<slug>/meta.json
//	posts/<slug>/images/captions.json
//	authors/<author-id>.json
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ContentSource = (*Source)(nil)

// Directory and file names below the content root.
const (
	PostsDir     = "posts"
	AuthorsDir   = "authors"
	MetaFile     = "meta.json"
	CaptionsFile = "captions.json"
	ImagesDir    = "images"
)

// Source is a ContentSource backed by a directory tree.
type Source struct {
	root string
}

// NewSource creates a source rooted at dir. The directory must exist.
func NewSource(dir string) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving content dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("content dir %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: %w: not a directory", abs, domain.ErrInvalidInput)
	}
	return &Source{root: abs}, nil
}

// Root returns the absolute content root.
func (s *Source) Root() string {
	return s.root
}

// ListArticles returns the article directories in name order.
// A missing posts directory is an empty corpus.
func (s *Source) ListArticles(ctx context.Context) ([]domain.ArticleID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, PostsDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	var ids []domain.ArticleID
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		id := domain.ArticleID(e.Name())
		if id.Validate() != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// ArticleExists reports whether the article directory exists.
func (s *Source) ArticleExists(_ context.Context, id domain.ArticleID) (bool, error) {
	dir, err := s.articleDir(id)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// ReadLocale returns the source of one locale.
func (s *Source) ReadLocale(ctx context.Context, id domain.ArticleID, locale domain.Locale) ([]byte, error) {
	if !locale.IsValid() {
		return nil, fmt.Errorf("%w: locale #%d", domain.ErrUnsupportedLocale, locale)
	}
	dir, err := s.articleDir(id)
	if err != nil {
		return nil, err
	}
	return readFile(ctx, filepath.Join(dir, LocaleFile(locale)))
}

// ReadMeta parses meta.json.
func (s *Source) ReadMeta(ctx context.Context, id domain.ArticleID) (*domain.ArticleMeta, error) {
	dir, err := s.articleDir(id)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, MetaFile)
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	meta, err := decodeMeta(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return meta, nil
}

// ReadCaptions parses images/captions.json. A missing file is an empty table.
func (s *Source) ReadCaptions(ctx context.Context, id domain.ArticleID) (map[string]domain.Localized[string], error) {
	dir, err := s.articleDir(id)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, ImagesDir, CaptionsFile)
	data, err := readFile(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return map[string]domain.Localized[string]{}, nil
		}
		return nil, err
	}
	captions, err := decodeCaptions(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return captions, nil
}

// ReadAuthor parses authors/<id>.json.
func (s *Source) ReadAuthor(ctx context.Context, authorID string) (*domain.Author, error) {
	if authorID == "" || strings.ContainsAny(authorID, `/\`) || authorID == "." || authorID == ".." {
		return nil, fmt.Errorf("%w: author id %q", domain.ErrInvalidInput, authorID)
	}
	path := filepath.Join(s.root, AuthorsDir, authorID+".json")
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}
	author, err := decodeAuthor(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if author.ID == "" {
		author.ID = authorID
	}
	return author, nil
}

// LocaleFile returns the file name of a locale source, e.g. "zh-TW.md".
func LocaleFile(l domain.Locale) string {
	return l.String() + ".md"
}

func (s *Source) articleDir(id domain.ArticleID) (string, error) {
	if err := id.Validate(); err != nil {
		return "", err
	}
	return filepath.Join(s.root, PostsDir, string(id)), nil
}

// osReadFile is replaced in tests to simulate a stalled mount.
var osReadFile = os.ReadFile

// readFile maps a missing file to domain.ErrNotFound. The read runs in its
// own goroutine so that a stalled filesystem cannot outlive ctx; the
// goroutine finishes on its own once the read returns.
func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		data []byte
		err  error
	}
	read := osReadFile
	done := make(chan result, 1)
	go func() {
		data, err := read(path)
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read %s: %w", path, ctx.Err())
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%s: %w", path, domain.ErrNotFound)
			}
			return nil, r.err
		}
		return r.data, nil
	}
}
