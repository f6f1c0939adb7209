// Package domain holds the parallax vocabulary: the four content locales,
// total per-locale maps, multi-locale articles and their rendered parts,
// alignment rows, search results and settings.
//
// Everything else in the module imports domain; domain imports only the
// standard library.
package domain
