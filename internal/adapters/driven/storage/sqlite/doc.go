// Package sqlite persists rendered locales so repeated CLI runs skip the
// markdown pipeline for unchanged sources.
//
// Rows are keyed by (article id, locale, content hash); a changed source or
// caption file produces a new hash and the stale row is simply never read
// again until Purge. The schema lives in migrations/ and the database in
// <dir>/render.db, opened in WAL mode with modernc.org/sqlite (no cgo).
package sqlite
