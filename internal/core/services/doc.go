// Package services implements the driving port interfaces.
//
// ArticleService assembles multi-locale articles from a ContentSource,
// CompareService aligns two locales of one article, and SearchService
// holds the current search index snapshot and answers catalogue queries
// from it. Reloader rebuilds that snapshot when content changes.
package services
