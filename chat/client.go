// Package chat talks to the external text-generation collaborator and
// executes its tool calls against the local task store. The collaborator is
// stateless: each request carries the full conversation context and the
// current task snapshot.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	internalstrings "github.com/amonks/taskmaster/internal/strings"
	"github.com/amonks/taskmaster/task"
)

// DefaultEndpoint is the collaborator URL used when none is configured.
const DefaultEndpoint = "http://localhost:5000/gemini-chat"

// HistoryEntry is one prior turn of the conversation.
type HistoryEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Message is the rich request variant: the new user turn plus everything the
// stateless collaborator needs to reconstruct context.
type Message struct {
	UserMessage         string          `json:"userMessage"`
	Model               string          `json:"model,omitempty"`
	ConversationHistory []HistoryEntry  `json:"conversationHistory,omitempty"`
	CurrentTasks        []task.Task     `json:"currentTasks,omitempty"`
	ToolResponse        json.RawMessage `json:"toolResponse,omitempty"`
}

// ToolCall is a named task operation requested by the collaborator.
type ToolCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// Reply is the collaborator's response: display text plus any tool calls to
// run locally.
type Reply struct {
	Text      string     `json:"text"`
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// Client posts chat requests to the collaborator endpoint.
type Client struct {
	endpoint string
	http     *http.Client

	// Model optionally names the generation model; the collaborator picks
	// its own default when empty.
	Model string
}

// NewClient creates a client for the given endpoint. An empty endpoint uses
// the default.
func NewClient(endpoint string) *Client {
	endpoint = internalstrings.TrimTrailingSlash(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Ask sends a bare prompt and returns the response text.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	payload := map[string]string{"prompt": prompt}
	if c.Model != "" {
		payload["model"] = c.Model
	}

	var reply Reply
	if err := c.post(ctx, payload, &reply); err != nil {
		return "", err
	}
	return reply.Text, nil
}

// Send sends a rich message and returns the full reply, tool calls
// included.
func (c *Client) Send(ctx context.Context, msg Message) (Reply, error) {
	if msg.Model == "" {
		msg.Model = c.Model
	}

	var reply Reply
	if err := c.post(ctx, msg, &reply); err != nil {
		return Reply{}, err
	}
	return reply, nil
}

func (c *Client) post(ctx context.Context, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("contacting chat collaborator: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return fmt.Errorf("chat collaborator: %s", e.Error)
		}
		return fmt.Errorf("chat collaborator: unexpected status %s", resp.Status)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding chat response: %w", err)
	}
	return nil
}
