package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/storyline/internal/orchestrator"
	"github.com/Yates-Labs/storyline/internal/story"
)

var (
	chunksStoriesFile string
	chunksStoryID     int
	chunksMock        bool
	chunksExport      string
)

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Expand a story into five learning chunks",
	Long: `Expand one story from an exported stories file into five chunks:
core concept, historical context, expert insight, real-world application
and a deep dive.

Examples:
  storyline chunks --stories stories.json --id 2
  storyline chunks --stories stories.json --id 2 --export chunks.json`,
	Args: cobra.NoArgs,
	RunE: runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)
	chunksCmd.Flags().StringVar(&chunksStoriesFile, "stories", "", "Stories JSON file produced by 'storyline stories --export'")
	chunksCmd.Flags().IntVar(&chunksStoryID, "id", 0, "ID of the story to expand")
	chunksCmd.Flags().BoolVar(&chunksMock, "mock", false, "Use built-in sample chunks instead of a provider")
	chunksCmd.Flags().StringVar(&chunksExport, "export", "", "Export chunks to JSON file: --export <filename>")
	_ = chunksCmd.MarkFlagRequired("stories")
	_ = chunksCmd.MarkFlagRequired("id")
}

func runChunks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	stories, err := loadStoriesFile(chunksStoriesFile)
	if err != nil {
		return err
	}
	s, ok := story.FindStory(stories, chunksStoryID)
	if !ok {
		return fmt.Errorf("story %d not found in %s", chunksStoryID, chunksStoriesFile)
	}

	var chunks []story.Chunk
	providerCfg := appConfig.ProviderConfig()
	if chunksMock || providerCfg == nil {
		fmt.Fprintln(out, mockBadge)
		chunks = orchestrator.MockChunks(s)
	} else {
		chunks, err = newPipeline(appConfig, appLogger).ChunksFromStory(ctx, s, *providerCfg)
		if err != nil {
			return fmt.Errorf("chunk generation failed: %w", err)
		}
	}

	if chunksExport != "" {
		file, err := os.Create(chunksExport)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer file.Close()

		if err := story.ExportChunks(chunks, string(story.FormatJSON), file); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✓ Exported %d chunks to %s", len(chunks), chunksExport)))
		return nil
	}

	outputChunks(out, s, chunks)
	return nil
}

func loadChunksFile(path string) ([]story.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunks file: %w", err)
	}
	defer f.Close()
	return story.LoadChunks(f)
}

func outputChunks(out io.Writer, s story.Story, chunks []story.Chunk) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(s.Title))
	fmt.Fprintln(out, mutedStyle.Render(s.Description))
	fmt.Fprintln(out)

	for _, ch := range chunks {
		label := "Extra"
		if stage := ch.Stage(); stage != "" {
			label = stage.Label()
		}
		fmt.Fprintf(out, "%s %s\n",
			summaryStyle.Render(fmt.Sprintf("%d/%d %s", ch.ID, story.ChunkCount, label)),
			headerStyle.Render(ch.Title))
		fmt.Fprintln(out, bodyStyle.Render(ch.Content))
		fmt.Fprintln(out, mutedStyle.Render(ch.Image))
		fmt.Fprintln(out)
	}
}
