package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	tagsJSON  bool
	statsJSON bool
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag in the corpus",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "output as JSON")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runTags(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return err
	}
	tags, err := searchService.Tags(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	sort.Strings(tags)

	if tagsJSON {
		if tags == nil {
			tags = []string{}
		}
		return printJSON(cmd, tags)
	}
	if len(tags) == 0 {
		cmd.Println("No tags found.")
		return nil
	}
	for _, tag := range tags {
		cmd.Println(tag)
	}
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if catalogueService == nil {
		return errors.New("catalogue service not configured")
	}
	if err := ensureIndex(ctx); err != nil {
		return err
	}
	stats, err := catalogueService.CorpusStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	if statsJSON {
		return printJSON(cmd, stats)
	}

	cmd.Println("Corpus")
	cmd.Println("======")
	cmd.Printf("  Articles: %d\n", stats.TotalArticles)
	cmd.Printf("  Tags:     %d\n", stats.TotalTags)
	cmd.Printf("  Failed:   %d\n", stats.Failed)
	cmd.Printf("  Index:    %s (built %s)\n", stats.IndexID, stats.BuiltAt.Format("2006-01-02 15:04:05"))

	if len(stats.ByMonth) > 0 {
		months := make([]string, 0, len(stats.ByMonth))
		for m := range stats.ByMonth {
			months = append(months, m)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(months)))
		cmd.Println()
		cmd.Println("By month:")
		for _, m := range months {
			cmd.Printf("  %s  %d\n", m, stats.ByMonth[m])
		}
	}

	if failures := catalogueService.Failures(); len(failures) > 0 {
		cmd.Println()
		cmd.Println("Failed articles:")
		for _, f := range failures {
			cmd.Printf("  %s: %v\n", f.ID, f.Err)
		}
	}
	return nil
}
