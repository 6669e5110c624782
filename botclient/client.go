// Package botclient provides the HTTP client a bot uses to talk to the
// coordinator: register, poll its command queue, and clear it after
// processing.
package botclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/botfleet/coordinator/domain"
)

// CommandFunc is called for each pending command fetched from the
// coordinator. Returning an error aborts the current poll cycle; the
// fetched commands stay queued and are redelivered next cycle.
type CommandFunc func(ctx context.Context, entry domain.CommandEntry) error

// Client is an HTTP client for the coordinator.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new client for the coordinator at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Register registers (or re-registers) the bot. Attributes beyond
// bot_id are free-form and merged server-side on re-registration.
func (c *Client) Register(ctx context.Context, botID string, attrs map[string]interface{}) error {
	payload := map[string]interface{}{"bot_id": botID}
	for k, v := range attrs {
		if k != "bot_id" {
			payload[k] = v
		}
	}

	var resp struct {
		Status string `json:"status"`
		BotID  string `json:"bot_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/register", payload, &resp); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	return nil
}

// Commands fetches the bot's pending commands in insertion order.
func (c *Client) Commands(ctx context.Context, botID string) ([]domain.CommandEntry, error) {
	var resp struct {
		Status   string                `json:"status"`
		BotID    string                `json:"bot_id"`
		Commands []domain.CommandEntry `json:"commands"`
	}
	if err := c.do(ctx, http.MethodGet, "/commands/"+botID, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch commands: %w", err)
	}
	return resp.Commands, nil
}

// ClearCommands clears the bot's queue and returns how many entries the
// coordinator removed.
func (c *Client) ClearCommands(ctx context.Context, botID string) (int, error) {
	var resp struct {
		Status       string `json:"status"`
		ClearedCount int    `json:"cleared_count"`
	}
	if err := c.do(ctx, http.MethodPost, "/commands/"+botID+"/clear", nil, &resp); err != nil {
		return 0, fmt.Errorf("failed to clear commands: %w", err)
	}
	return resp.ClearedCount, nil
}

// Unregister removes the bot and its queue from the coordinator.
func (c *Client) Unregister(ctx context.Context, botID string) error {
	if err := c.do(ctx, http.MethodDelete, "/bots/"+botID, nil, nil); err != nil {
		return fmt.Errorf("failed to unregister: %w", err)
	}
	return nil
}

// Run drives the poll loop: register, fetch pending commands, hand each
// to fn, clear the queue, sleep, repeat. Each cycle re-registers, which
// doubles as the heartbeat. Run returns when ctx is cancelled.
func (c *Client) Run(ctx context.Context, botID string, attrs map[string]interface{}, interval time.Duration, fn CommandFunc) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := c.cycle(ctx, botID, attrs, fn); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Transient failure; keep polling.
			log.Printf("WARN: poll cycle failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) cycle(ctx context.Context, botID string, attrs map[string]interface{}, fn CommandFunc) error {
	if err := c.Register(ctx, botID, attrs); err != nil {
		return err
	}

	entries, err := c.Commands(ctx, botID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	for _, entry := range entries {
		if err := fn(ctx, entry); err != nil {
			return fmt.Errorf("command %s failed: %w", entry.CommandID, err)
		}
	}

	_, err = c.ClearCommands(ctx, botID)
	return err
}

// do executes one request and decodes the success envelope into out.
// Non-2xx responses are surfaced with the server's error message.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			return fmt.Errorf("coordinator returned status %d: %s", resp.StatusCode, envelope.Message)
		}
		return fmt.Errorf("coordinator returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
