package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parallax/internal/adapters/driving/tui"
	"github.com/custodia-labs/parallax/internal/logger"
)

var (
	tuiLocale   string
	tuiNoReload bool
)

// runTUIApp starts the program. Tests replace it.
var runTUIApp = func(ctx context.Context, app *tui.App) error {
	return app.Run(ctx)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse, read and compare articles interactively",
	Long: `Opens a terminal reader. Search across every locale, read an article
in any of its translations and compare two of them side by side.

The index is rebuilt in the background when content changes unless
--no-reload is given or watching is disabled in the settings.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiLocale, "locale", "l", "", "reading locale (default from settings)")
	tuiCmd.Flags().BoolVar(&tuiNoReload, "no-reload", false, "do not rebuild the index on content changes")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := ensureCatalogue(ctx); err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	locale, err := resolveLocale(tuiLocale)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{
		Search:    searchService,
		Catalogue: catalogueService,
		Articles:  articleService,
		Compare:   compareService,
		Locale:    locale,
	})
	if err != nil {
		return err
	}

	// Log lines would corrupt the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	if reloader != nil && !tuiNoReload {
		go func() {
			if err := reloader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error(err, "content reloader stopped")
			}
		}()
	}

	return runTUIApp(ctx, app)
}
