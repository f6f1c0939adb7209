// Package cli provides the parallax command-line interface.
package cli

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parallax/internal/core/ports/driving"
	"github.com/custodia-labs/parallax/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Runner is a long-running background task started by serve.
type Runner interface {
	Run(ctx context.Context) error
}

// Services holds the driving ports the commands call.
type Services struct {
	Articles  driving.ArticleService
	Compare   driving.CompareService
	Search    driving.SearchService
	Catalogue driving.CatalogueService
	Settings  driving.SettingsService

	// Reloader, if set, rebuilds the index on content changes while serving.
	Reloader Runner

	// Metrics, if set, is served at /metrics next to the MCP HTTP transport.
	Metrics http.Handler
}

var (
	articleService   driving.ArticleService
	compareService   driving.CompareService
	searchService    driving.SearchService
	catalogueService driving.CatalogueService
	settingsService  driving.SettingsService
	reloader         Runner
	metricsHandler   http.Handler

	indexOnce sync.Once
	indexErr  error
)

var (
	verbose bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "parallax",
	Short: "Multilingual article reader and search",
	Long: `Parallax loads articles written in Japanese, English and Chinese,
renders them, aligns translations sentence by sentence and searches across
every locale.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
		if logJSON {
			logger.SetJSON(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write log records as JSON")
}

// SetServices injects the services used by every command.
func SetServices(s Services) {
	articleService = s.Articles
	compareService = s.Compare
	searchService = s.Search
	catalogueService = s.Catalogue
	settingsService = s.Settings
	reloader = s.Reloader
	metricsHandler = s.Metrics
	indexOnce = sync.Once{}
	indexErr = nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ensureIndex builds the search index once per process.
func ensureIndex(ctx context.Context) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}
	indexOnce.Do(func() {
		logger.Section("Index")
		indexErr = searchService.Rebuild(ctx)
	})
	return indexErr
}

// ensureCatalogue builds the index and checks the catalogue is wired.
func ensureCatalogue(ctx context.Context) error {
	if catalogueService == nil {
		return errors.New("catalogue service not configured")
	}
	return ensureIndex(ctx)
}
