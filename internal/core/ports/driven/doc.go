// Package driven lists what the parallax core needs from the outside world:
// article sources, a place to keep rendered locales, settings storage and
// change notifications.
//
// ContentSource and ConfigStore are required. RenderCache and Watcher may be
// nil; without a cache every load re-renders, and without a watcher the
// index is built once per process.
//
// Only the domain package may be imported here.
package driven
