package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Yates-Labs/storyline/internal/orchestrator"
	"github.com/Yates-Labs/storyline/internal/story"
)

var (
	historyFile   string
	storiesMock   bool
	storiesExport string
)

var storiesCmd = &cobra.Command{
	Use:   "stories [url...]",
	Short: "Generate stories from browsing history",
	Long: `Group browsing-history URLs into thematic stories and display them.

URLs can be given as arguments, read from a file with one URL per line
(--history), or both. Lines starting with # are ignored.

Examples:
  storyline stories https://en.wikipedia.org/wiki/Tide https://www.nasa.gov/moon
  storyline stories --history history.txt --export stories.json
  storyline stories --mock`,
	RunE: runStories,
}

func init() {
	rootCmd.AddCommand(storiesCmd)
	storiesCmd.Flags().StringVar(&historyFile, "history", "", "File with one URL per line")
	storiesCmd.Flags().BoolVar(&storiesMock, "mock", false, "Use built-in sample stories instead of a provider")
	storiesCmd.Flags().StringVar(&storiesExport, "export", "", "Export stories to JSON file: --export <filename>")
}

func runStories(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	urls := append([]string{}, args...)
	if historyFile != "" {
		f, err := os.Open(historyFile)
		if err != nil {
			return fmt.Errorf("failed to open history file: %w", err)
		}
		defer f.Close()

		fromFile, err := readHistory(f)
		if err != nil {
			return fmt.Errorf("failed to read history file: %w", err)
		}
		urls = append(urls, fromFile...)
	}

	var stories []story.Story
	providerCfg := appConfig.ProviderConfig()
	if storiesMock || providerCfg == nil {
		fmt.Fprintln(out, mockBadge)
		stories = orchestrator.MockStories()
	} else {
		var err error
		stories, err = newPipeline(appConfig, appLogger).StoriesFromHistory(ctx, urls, *providerCfg)
		if err != nil {
			return fmt.Errorf("story generation failed: %w", err)
		}
	}

	if len(stories) == 0 {
		fmt.Fprintln(out, "No stories generated")
		return nil
	}

	if storiesExport != "" {
		return exportStories(out, stories, storiesExport)
	}

	return outputStoriesTable(out, stories)
}

// readHistory reads one URL per line, skipping blanks and # comments.
func readHistory(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

func exportStories(out io.Writer, stories []story.Story, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := story.ExportStories(stories, string(story.FormatJSON), file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Exported %d stories to %s", len(stories), filename)))
	return nil
}

func loadStoriesFile(path string) ([]story.Story, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stories file: %w", err)
	}
	defer f.Close()
	return story.LoadStories(f)
}

func outputStoriesTable(out io.Writer, stories []story.Story) error {
	// Column widths
	const (
		idWidth       = 6
		titleWidth    = 36
		sourceWidth   = 9
		keywordsWidth = 28
	)

	cellHeader := headerStyle.Padding(0, 1)

	headers := []string{
		cellHeader.Width(idWidth).Render("ID"),
		cellHeader.Width(titleWidth).Render("STORY"),
		cellHeader.Width(sourceWidth).Render("SOURCES"),
		cellHeader.Width(keywordsWidth).Render("IMAGE"),
	}
	fmt.Fprintln(out, strings.Join(headers, borderStyle.Render("│")))

	separatorParts := []string{
		strings.Repeat("─", idWidth),
		strings.Repeat("─", titleWidth),
		strings.Repeat("─", sourceWidth),
		strings.Repeat("─", keywordsWidth),
	}
	fmt.Fprintln(out, borderStyle.Render(strings.Join(separatorParts, "┼")))

	idStyle := lipgloss.NewStyle().
		Foreground(idColor).
		Padding(0, 1).
		Width(idWidth).
		Align(lipgloss.Right)

	titleStyle := lipgloss.NewStyle().
		Foreground(textColor).
		Padding(0, 1).
		Width(titleWidth)

	numStyle := lipgloss.NewStyle().
		Foreground(numberColor).
		Padding(0, 1).
		Width(sourceWidth).
		Align(lipgloss.Right)

	keywordStyle := lipgloss.NewStyle().
		Foreground(borderColor).
		Padding(0, 1).
		Width(keywordsWidth)

	totalSources := 0
	for _, s := range stories {
		totalSources += len(s.RelatedURLs)
		cells := []string{
			idStyle.Render(fmt.Sprintf("%d", s.ID)),
			titleStyle.Render(clip(s.Title, titleWidth-2)),
			numStyle.Render(fmt.Sprintf("%d", len(s.RelatedURLs))),
			keywordStyle.Render(clip(s.ImageKeywords, keywordsWidth-2)),
		}
		fmt.Fprintln(out, strings.Join(cells, borderStyle.Render("│")))
	}

	fmt.Fprintln(out)
	for _, s := range stories {
		fmt.Fprintf(out, "%s %s\n", headerStyle.Render(fmt.Sprintf("#%d", s.ID)), bodyStyle.Render(s.Description))
		fmt.Fprintln(out, mutedStyle.Render("  "+s.Image))
	}

	fmt.Fprintln(out)
	summary := fmt.Sprintf("Total: %d stories from %d sources", len(stories), totalSources)
	fmt.Fprintln(out, summaryStyle.Render(summary))

	return nil
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
