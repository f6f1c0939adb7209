package cli

import (
	"errors"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

var (
	compareLeft  string
	compareRight string
	compareJSON  bool
	compareWidth int
)

// defaultCompareWidth is used when stdout is not a terminal.
const defaultCompareWidth = 100

var compareCmd = &cobra.Command{
	Use:   "compare <slug>",
	Short: "Show two translations side by side",
	Long: `Aligns two locales of an article sentence by sentence using the
<!-- sN --> markers in the sources. Rows follow the left locale; markers
only the right locale has are listed after the table.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareLeft, "left", "ja", "left-hand locale")
	compareCmd.Flags().StringVar(&compareRight, "right", "en", "right-hand locale")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "output the comparison as JSON")
	compareCmd.Flags().IntVarP(&compareWidth, "width", "w", 0, "output width (0 = terminal width)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if compareService == nil {
		return errors.New("compare service not configured")
	}

	left, err := domain.ParseLocale(compareLeft)
	if err != nil {
		return err
	}
	right, err := domain.ParseLocale(compareRight)
	if err != nil {
		return err
	}

	cmp, err := compareService.Compare(cmd.Context(), domain.ArticleID(args[0]), left, right)
	if err != nil {
		return fmt.Errorf("compare failed: %w", err)
	}

	if compareJSON {
		return printJSON(cmd, cmp)
	}

	cmd.Print(renderComparison(cmp, outputWidth()))
	return nil
}

func outputWidth() int {
	if compareWidth > 0 {
		return compareWidth
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultCompareWidth
}

var (
	compareHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	compareMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	compareMuted  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6C7086"))
	compareWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

// renderComparison lays the rows out in two columns with the marker id in
// a narrow gutter.
func renderComparison(cmp *domain.Comparison, width int) string {
	const gutter = 6
	col := (width - gutter - 2) / 2
	if col < 10 {
		col = 10
	}

	markerCol := lipgloss.NewStyle().Width(gutter)
	cell := lipgloss.NewStyle().Width(col).PaddingRight(1)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		markerCol.Render(""),
		cell.Render(compareHeader.Render(fmt.Sprintf("[%s] %s", cmp.Left, cmp.Title[0]))),
		cell.Render(compareHeader.Render(fmt.Sprintf("[%s] %s", cmp.Right, cmp.Title[1]))),
	))
	b.WriteString("\n\n")

	for _, row := range cmp.Rows {
		right := plainText(row.RightText)
		if row.RightMissing {
			right = compareMuted.Render("(missing)")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			markerCol.Render(compareMarker.Render(row.MarkerID)),
			cell.Render(plainText(row.LeftText)),
			cell.Render(right),
		))
		b.WriteString("\n")
	}

	if len(cmp.RightOnly) > 0 {
		b.WriteString("\n")
		b.WriteString(compareWarn.Render(fmt.Sprintf("Only in %s: %s", cmp.Right, strings.Join(cmp.RightOnly, ", "))))
		b.WriteString("\n")
	}
	return b.String()
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// plainText reduces a rendered cell to terminal text.
func plainText(cell string) string {
	text := htmlTag.ReplaceAllString(cell, "")
	return strings.TrimSpace(html.UnescapeString(text))
}
