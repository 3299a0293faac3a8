package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/storyline/internal/orchestrator"
	"github.com/Yates-Labs/storyline/internal/provider"
	"github.com/Yates-Labs/storyline/internal/story"
)

var (
	chatStoriesFile string
	chatChunksFile  string
	chatStoryID     int
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat about a story",
	Long: `Ask questions about a story and the chunks that expand it.

With a message argument a single reply is printed. Without one an
interactive session starts; type "exit" or press Ctrl-D to leave.

Examples:
  storyline chat --stories stories.json --id 1 "Why does this matter?"
  storyline chat --stories stories.json --chunks chunks.json --id 1`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatStoriesFile, "stories", "", "Stories JSON file produced by 'storyline stories --export'")
	chatCmd.Flags().StringVar(&chatChunksFile, "chunks", "", "Chunks JSON file produced by 'storyline chunks --export'")
	chatCmd.Flags().IntVar(&chatStoryID, "id", 0, "ID of the story to chat about")
	_ = chatCmd.MarkFlagRequired("stories")
	_ = chatCmd.MarkFlagRequired("id")
}

func runChat(cmd *cobra.Command, args []string) error {
	stories, err := loadStoriesFile(chatStoriesFile)
	if err != nil {
		return err
	}
	s, ok := story.FindStory(stories, chatStoryID)
	if !ok {
		return fmt.Errorf("story %d not found in %s", chatStoryID, chatStoriesFile)
	}

	var chunks []story.Chunk
	if chatChunksFile != "" {
		chunks, err = loadChunksFile(chatChunksFile)
		if err != nil {
			return err
		}
	}

	session := &chatSession{
		pipeline: newPipeline(appConfig, appLogger),
		cfg:      appConfig.ProviderConfig(),
		story:    s,
		chunks:   chunks,
		now:      time.Now,
	}

	out := cmd.OutOrStdout()
	if session.cfg == nil {
		fmt.Fprintln(out, mockBadge)
	}

	if len(args) > 0 {
		reply := session.Ask(cmd.Context(), strings.Join(args, " "))
		fmt.Fprintln(out, bodyStyle.Render(reply))
		return nil
	}

	return session.Run(cmd.Context(), cmd.InOrStdin(), out)
}

// chatSession keeps the running conversation about one story.
type chatSession struct {
	pipeline *orchestrator.Pipeline
	cfg      *provider.Config
	story    story.Story
	chunks   []story.Chunk
	history  []story.Message
	now      func() time.Time
}

// Ask sends one message and records both sides of the exchange.
func (c *chatSession) Ask(ctx context.Context, message string) string {
	chatCtx := story.NewChatContext(c.story, c.chunks, c.history)
	reply := c.pipeline.ChatReply(ctx, message, chatCtx, c.cfg)

	c.history = append(c.history,
		story.Message{Text: message, Sender: story.SenderUser, Timestamp: c.now()},
		story.Message{Text: reply, Sender: story.SenderAssistant, Timestamp: c.now()},
	)
	return reply
}

// Run reads messages line by line until EOF or "exit".
func (c *chatSession) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, headerStyle.Render("Chatting about: "+c.story.Title))
	fmt.Fprintln(out, mutedStyle.Render(`Type "exit" to quit.`))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, summaryStyle.Render("you> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			return nil
		}

		reply := c.Ask(ctx, message)
		fmt.Fprintln(out, bodyStyle.Render(reply))
		fmt.Fprintln(out)
	}
}
