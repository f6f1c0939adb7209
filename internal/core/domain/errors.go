package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedLocale indicates a locale outside the supported set.
	// Callers passing an unknown locale get this error, never a silent fallback.
	ErrUnsupportedLocale = errors.New("unsupported locale")

	// ErrPartialContent indicates an article loaded with one or more
	// locales degraded or missing.
	ErrPartialContent = errors.New("partial content")

	// ErrMalformedMarkup indicates a locale's source could not be rendered.
	ErrMalformedMarkup = errors.New("malformed markup")

	// ErrIndexNotBuilt indicates a search was attempted before the first build.
	ErrIndexNotBuilt = errors.New("search index not built")

	// ErrArticleUnavailable indicates an article failed to load within its deadline.
	ErrArticleUnavailable = errors.New("article unavailable")
)
