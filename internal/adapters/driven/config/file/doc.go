// Package file stores parallax settings in a TOML file, by default
// ~/.parallax/config.toml. Keys are dotted paths into nested tables, so
// "search.threshold" is read from
//
//	[search]
//	threshold = 0.4
package file
