// Package driving holds the operations the CLI, MCP server and TUI call:
// loading articles, comparing two locales, searching and browsing the
// catalogue, and editing settings. internal/core/services implements them.
package driving
