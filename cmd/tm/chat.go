package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amonks/taskmaster/chat"
	"github.com/amonks/taskmaster/internal/markdown"
	"github.com/amonks/taskmaster/task"
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Talk to the assistant about your tasks",
	Long: `Talk to the assistant about your tasks.

With a prompt argument, sends a single message and prints the reply. Without
one, starts an interactive loop. The assistant can create, update, delete,
and list tasks; its tool calls run against the local store and the results
are relayed back.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

const maxToolRounds = 8

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}

	client := chat.NewClient(cfg.Chat.Endpoint)
	client.Model = cfg.Chat.Model

	session := &chatSession{
		client: client,
		tools:  chat.NewTools(store),
		store:  store,
	}

	if len(args) == 1 {
		return session.turn(cmd.Context(), args[0])
	}

	fmt.Println("Ask about your tasks. Empty line or ctrl-d exits.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		prompt := strings.TrimSpace(scanner.Text())
		if prompt == "" {
			return nil
		}
		if err := session.turn(cmd.Context(), prompt); err != nil {
			// Collaborator failures are transient; keep the loop alive.
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

type chatSession struct {
	client  *chat.Client
	tools   *chat.Tools
	store   *task.Store
	history []chat.HistoryEntry
}

// turn sends one user message, runs any requested tool calls, and prints the
// assistant's final text.
func (s *chatSession) turn(ctx context.Context, prompt string) error {
	s.history = append(s.history, chat.HistoryEntry{Role: "user", Text: prompt})

	msg := chat.Message{
		UserMessage:         prompt,
		ConversationHistory: s.history,
		CurrentTasks:        s.store.List(),
	}

	for round := 0; ; round++ {
		reply, err := s.client.Send(ctx, msg)
		if err != nil {
			return err
		}

		if reply.Text != "" {
			s.history = append(s.history, chat.HistoryEntry{Role: "assistant", Text: reply.Text})
			printAssistant(reply.Text)
		}

		if len(reply.ToolCalls) == 0 {
			return nil
		}
		if round >= maxToolRounds {
			return fmt.Errorf("assistant exceeded %d tool rounds", maxToolRounds)
		}

		results := s.tools.ExecuteAll(reply.ToolCalls)
		raw, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("encoding tool results: %w", err)
		}
		msg = chat.Message{
			UserMessage:         prompt,
			ConversationHistory: s.history,
			CurrentTasks:        s.store.List(),
			ToolResponse:        raw,
		}
	}
}

func printAssistant(text string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(text)
		return
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 20 {
		width = 80
	}
	fmt.Println(markdown.Render(width, text))
}
