// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the birdwatch CLI.
//
// Handles the "birdwatch chat" command, a line-based REPL against the
// birdwatching API for terminals where the full TUI is unwanted.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Examples:
//   birdwatch chat                    Start chat (default model)
//   birdwatch chat --model llm-cnn    Start with the audio classifier
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /model [name]       Show or switch the active model
//   /attach <path>      Attach a recording or photo to the next message
//   /detach             Drop the staged attachment
//   /new                Start a fresh chat
//   /history [query]    List recent chats; a query searches the local cache
//   /export [path]      Save the chat as a Markdown transcript
//   /quit, /q           Exit chat
//   Ctrl+C              Abort the prompt
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/birdwatch-tui/internal/api"
	"github.com/jeranaias/birdwatch-tui/internal/config"
	"github.com/jeranaias/birdwatch-tui/internal/model"
	"github.com/jeranaias/birdwatch-tui/internal/storage"
	"github.com/jeranaias/birdwatch-tui/internal/ui/chat"
	"github.com/jeranaias/birdwatch-tui/internal/ui/components"
	"github.com/jeranaias/birdwatch-tui/internal/ui/styles"
	"github.com/jeranaias/birdwatch-tui/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Sky).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Forest).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Forest)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(styles.Plume).
			Bold(true)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
// Supports arrow keys for history navigation.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	// History lives in the config directory, next to the session token
	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}

	cli.LoadHistory()

	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists command history to file with secure permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession holds the state for an interactive chat session. The
// active chat is the server's confirmed transcript; each turn replaces
// it wholesale with the server's response.
type ChatSession struct {
	// Active chat, nil before the first exchange
	Chat *model.Chat

	// Active model tag
	ModelTag string

	// Attachment staged for the next message
	Staged *model.Attachment

	Quiet bool

	// Tracking
	StartTime time.Time
	Turns     int

	Runtime  *Runtime
	InputCLI *ChatCLI
}

// NewChatSession creates a new chat session.
func NewChatSession(rt *Runtime, args Args) *ChatSession {
	return &ChatSession{
		ModelTag:  rt.ModelTag(),
		Quiet:     args.Quiet,
		StartTime: time.Now(),
		Runtime:   rt,
		InputCLI:  NewChatCLI(),
	}
}

// requestContext returns a context bounded by the configured timeout.
func (s *ChatSession) requestContext() (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.Runtime.Config.API.TimeoutSecs) * time.Second
	return context.WithTimeout(context.Background(), timeout)
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChat handles the "chat" command.
func HandleChat(args Args) error {
	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	session := NewChatSession(rt, args)

	// Probe the server up front so the failure mode is a clear message
	// instead of a hung first turn
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = rt.Client.CheckReachable(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("cannot reach the birdwatch server at %s: %w", rt.Client.BaseURL(), err)
	}

	if !session.Quiet {
		printWelcome(session)
	}

	defer session.InputCLI.Close()

	// Main REPL loop using liner for input history
	for {
		input, err := session.InputCLI.ReadInput(promptStyle.Render("birdwatch> "))
		if err != nil {
			// Ctrl+C aborts the prompt, Ctrl+D sends EOF. Both exit.
			fmt.Println()
			printExitSummary(session)
			return nil
		}

		input = strings.TrimSpace(input)

		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			shouldContinue, err := handleSlashCommand(input, session)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			}
			if !shouldContinue {
				printExitSummary(session)
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printExitSummary(session)
			return nil
		}

		if err := processMessage(session, input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
	}
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage sends a message and prints the server's reply. On
// success the active chat is replaced with the server's transcript and
// the staged attachment is consumed; on failure both are left intact
// so the turn can be retried.
func processMessage(session *ChatSession, input string) error {
	ctx, cancel := session.requestContext()
	defer cancel()

	start := time.Now()

	// Remember where the transcript ended so only new messages print
	prevLen := 0
	if session.Chat != nil {
		prevLen = len(session.Chat.Messages)
	}

	var (
		updated *model.Chat
		err     error
	)
	if session.Chat == nil {
		updated, err = session.Runtime.Client.StartChat(ctx, session.ModelTag, input, session.Staged)
	} else {
		updated, err = session.Runtime.Client.ContinueChat(ctx, session.ModelTag, session.Chat.ChatID, input, session.Staged)
	}
	if err != nil {
		return describeAPIError(err)
	}

	session.Chat = updated
	session.Staged = nil
	session.Turns++

	if session.Runtime.Cache != nil {
		// Cache failures are silent: the cache is an offline convenience
		_ = session.Runtime.Cache.Put(session.ModelTag, updated)
	}

	fmt.Println()
	for _, msg := range repliesAfter(updated, prevLen) {
		printReply(session, msg)
	}

	if !session.Quiet {
		fmt.Fprintf(os.Stderr, "%s %s | %s\n",
			infoStyle.Render("[Turn]"),
			commandStyle.Render(session.ModelTag),
			time.Since(start).Round(time.Millisecond))
	}
	fmt.Println()

	return nil
}

// repliesAfter returns the non-user messages added past prevLen.
func repliesAfter(c *model.Chat, prevLen int) []*model.Message {
	var out []*model.Message
	for i := prevLen; i < len(c.Messages); i++ {
		if c.Messages[i].Role != model.RoleUser {
			out = append(out, c.Messages[i])
		}
	}
	return out
}

// printReply prints a single assistant or classifier message.
func printReply(session *ChatSession, msg *model.Message) {
	if att := msg.Attachment; att != nil && !att.IsLocal() && att.Path() != "" {
		fmt.Printf("%s %s\n",
			infoStyle.Render("["+att.Kind().String()+"]"),
			resolveAttachmentURL(session, att))
	}

	if msg.Results != nil {
		fmt.Printf("%s %s  %s match\n",
			infoStyle.Render("[Classifier]"),
			resultStyle.Render(msg.Results.PredictionLabel),
			util.FormatAccuracy(msg.Results.Accuracy))
	}

	if msg.Content == "" {
		return
	}

	// Render markdown on a TTY, plain text when piped
	if IsStdoutTTY() {
		if rendered, err := components.RenderMarkdown(msg.Content, GetTerminalWidth()); err == nil {
			fmt.Println(rendered)
			return
		}
	}
	fmt.Println(WrapText(msg.Content, GetTerminalWidth()))
}

// resolveAttachmentURL composes the absolute media URL for a remote
// attachment from the server's relative path.
func resolveAttachmentURL(session *ChatSession, att *model.Attachment) string {
	base := session.Runtime.Client.BaseURL()
	if att.Kind() == model.AttachmentImage {
		return api.ChatImageURL(base, session.ModelTag, att.Path())
	}
	return api.ChatAudioURL(base, session.ModelTag, att.Path())
}

// describeAPIError maps client errors to actionable messages.
func describeAPIError(err error) error {
	switch {
	case api.IsUnreachable(err):
		return fmt.Errorf("cannot reach the birdwatch server (is it running?): %w", err)
	case api.IsTimeout(err):
		return fmt.Errorf("the server took too long to answer; try again or raise timeout_secs: %w", err)
	case api.IsChatNotFound(err):
		return fmt.Errorf("the chat no longer exists on the server; use /new to start over: %w", err)
	default:
		return err
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands.
// Returns (shouldContinue, error) where shouldContinue=false means exit.
func handleSlashCommand(cmd string, session *ChatSession) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true, nil
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?":
		printHelp()
		return true, nil

	case "/model", "/m":
		return handleModelCommand(session, args)

	case "/attach", "/a":
		return handleAttachCommand(session, args)

	case "/detach":
		if session.Staged == nil {
			fmt.Println(infoStyle.Render("[No attachment staged]"))
			return true, nil
		}
		session.Staged = nil
		fmt.Println(commandStyle.Render("[Attachment removed]"))
		return true, nil

	case "/new", "/clear", "/c":
		session.Chat = nil
		session.Staged = nil
		fmt.Println(commandStyle.Render("[Started a new chat]"))
		return true, nil

	case "/history":
		return true, printHistory(session, args)

	case "/export":
		return true, exportChat(session, args)

	case "/quit", "/q", "/exit":
		return false, nil

	case "/":
		printHelp()
		return true, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
}

// handleModelCommand handles the /model command. Switching models
// abandons the active chat: transcripts belong to a single model.
func handleModelCommand(session *ChatSession, args []string) (bool, error) {
	if len(args) == 0 {
		fmt.Printf("%s Active model: %s (known: %s)\n",
			infoStyle.Render("[Model]"),
			commandStyle.Render(session.ModelTag),
			strings.Join(config.KnownModels, ", "))
		return true, nil
	}

	tag := args[0]
	if !config.IsKnownModel(tag) {
		return true, fmt.Errorf("unknown model %q (known: %s)", tag, strings.Join(config.KnownModels, ", "))
	}

	if tag == session.ModelTag {
		fmt.Printf("%s Already using %s\n", infoStyle.Render("[Model]"), commandStyle.Render(tag))
		return true, nil
	}

	session.ModelTag = tag
	if session.Chat != nil {
		session.Chat = nil
		fmt.Println(warningStyle.Render("[Active chat cleared: transcripts are per-model]"))
	}
	fmt.Printf("%s Switched to model: %s\n", commandStyle.Render("[OK]"), tag)

	return true, nil
}

// handleAttachCommand stages a recording or photo for the next message.
func handleAttachCommand(session *ChatSession, args []string) (bool, error) {
	if len(args) == 0 {
		return true, fmt.Errorf("usage: /attach <path>")
	}

	path := strings.Join(args, " ")
	att, err := chat.StageAttachment(path, int64(session.Runtime.Config.Chat.MaxUploadBytes))
	if err != nil {
		return true, err
	}

	session.Staged = att
	fmt.Printf("%s Staged %s (%s); it goes with your next message\n",
		commandStyle.Render("[OK]"),
		att.Name(),
		util.FormatSize(att.Size()))

	return true, nil
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printWelcome prints the welcome banner.
func printWelcome(session *ChatSession) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("birdwatch interactive chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Model:"),
		commandStyle.Render(session.ModelTag))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Server:"),
		commandStyle.Render(session.Runtime.Client.BaseURL()))

	fmt.Println()
	fmt.Println(infoStyle.Render("Describe a bird, or /attach a recording. Commands: /help, /quit"))
	fmt.Println()
}

// printHelp prints available commands.
func printHelp() {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("Available Commands"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Println()

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/model [name]", "Show or switch the active model"},
		{"/attach <path>", "Attach a recording or photo to the next message"},
		{"/detach", "Drop the staged attachment"},
		{"/new", "Start a fresh chat"},
		{"/history [query]", "List recent chats; a query searches the local cache"},
		{"/export [path]", "Save the chat as a Markdown transcript"},
		{"/quit, /q", "Exit chat"},
	}

	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-17s", c.cmd)),
			infoStyle.Render(c.desc))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: switching models starts a fresh chat"))
	fmt.Println()
}

// printHistory lists recent chats for the active model. A query searches
// the locally cached transcripts instead; when the server is unreachable
// the cached list stands in so history stays browsable offline.
func printHistory(session *ChatSession, args []string) error {
	cache := session.Runtime.Cache

	if len(args) > 0 {
		if cache == nil {
			return fmt.Errorf("no local cache available to search")
		}
		query := strings.Join(args, " ")
		metas, err := cache.Search(session.ModelTag, query)
		if err != nil {
			return err
		}
		if len(metas) == 0 {
			fmt.Println(infoStyle.Render(fmt.Sprintf("[No cached chats match %q]", query)))
			return nil
		}
		printChatRows(fmt.Sprintf("Cached chats matching %q", query), metas)
		return nil
	}

	ctx, cancel := session.requestContext()
	defer cancel()

	chats, err := session.Runtime.Client.ListChats(ctx, session.ModelTag, session.Runtime.Config.Chat.RecentLimit)
	if err != nil {
		if cache != nil {
			if metas, cerr := cache.List(session.ModelTag); cerr == nil && len(metas) > 0 {
				fmt.Println(warningStyle.Render("[Server unreachable, showing cached chats]"))
				printChatRows("Recent Chats ("+session.ModelTag+")", metas)
				return nil
			}
		}
		return describeAPIError(err)
	}

	if len(chats) == 0 {
		fmt.Println(infoStyle.Render("[No chats yet for this model]"))
		return nil
	}

	metas := make([]model.ChatMeta, 0, len(chats))
	for _, c := range chats {
		metas = append(metas, c.Meta())
	}
	printChatRows("Recent Chats ("+session.ModelTag+")", metas)
	return nil
}

// printChatRows prints chat listing rows with the timestamps aligned.
func printChatRows(heading string, metas []model.ChatMeta) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render(heading))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 25)))
	fmt.Println()

	now := time.Now()
	for i, meta := range metas {
		title := util.PadRight(util.TruncateRunes(meta.Title, 50), 50)
		fmt.Printf("  %d. %s  %s\n",
			i+1,
			commandStyle.Render(title),
			infoStyle.Render(util.FormatRelativeTime(time.Unix(meta.DTS, 0), now)))
	}
	fmt.Println()
}

// exportChat writes the active chat as a Markdown transcript.
func exportChat(session *ChatSession, args []string) error {
	if session.Chat == nil {
		return fmt.Errorf("no active chat to export (send a message first)")
	}

	path := session.Chat.ChatID + ".md"
	if len(args) > 0 {
		path = strings.Join(args, " ")
	}

	if err := os.WriteFile(path, []byte(storage.ExportMarkdown(session.Chat)), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}

	fmt.Printf("%s Exported transcript to %s\n", commandStyle.Render("[OK]"), path)
	return nil
}

// printExitSummary prints the session summary on exit.
func printExitSummary(session *ChatSession) {
	if session.Turns == 0 {
		fmt.Println(infoStyle.Render("Good birding!"))
		return
	}

	elapsed := time.Since(session.StartTime).Round(time.Second)

	fmt.Println()
	fmt.Println(welcomeStyle.Render("Session Summary"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 15)))

	fmt.Printf("  %s %d\n", infoStyle.Render("Turns:"), session.Turns)
	fmt.Printf("  %s %s\n", infoStyle.Render("Model:"), commandStyle.Render(session.ModelTag))
	fmt.Printf("  %s %s\n", infoStyle.Render("Duration:"), elapsed.String())

	fmt.Println()
	fmt.Println(infoStyle.Render("Good birding!"))
}
