package cli

import (
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

var versionJSON bool

// buildInfo is what the version command reports.
type buildInfo struct {
	Version string   `json:"version"`
	Go      string   `json:"go"`
	Locales []string `json:"locales"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and supported locales",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := buildInfo{Version: version, Go: runtime.Version()}
	for _, l := range domain.AllLocales() {
		info.Locales = append(info.Locales, l.String())
	}

	if versionJSON {
		return printJSON(cmd, info)
	}
	cmd.Printf("parallax version %s (%s)\n", info.Version, info.Go)
	cmd.Printf("locales: %s\n", strings.Join(info.Locales, ", "))
	return nil
}
