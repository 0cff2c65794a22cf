// Package llm wraps a chat-completion provider used for two advisory
// tasks: second-opinion complexity judgments and translating free-form
// algorithm descriptions into the analyzer's pseudocode dialect. LLM
// output never overrides the deterministic result.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Judgment is the provider's independent complexity estimate.
type Judgment struct {
	O           string `json:"O"`
	Omega       string `json:"Omega"`
	Theta       string `json:"Theta"`
	Explanation string `json:"explanation"`
}

// Client is implemented by anything that can judge and translate.
// The server depends on this interface so tests can stub it out.
type Client interface {
	Judge(ctx context.Context, pseudocode string) (Judgment, error)
	Translate(ctx context.Context, input string) (string, error)
}

// Options configures the OpenAI-backed client.
type Options struct {
	APIKey      string
	Model       string  // Defaults to gpt-4o-mini
	Temperature float32 // Defaults to 0: judgments should be reproducible
	MaxRetries  int     // Defaults to 3
	Timeout     time.Duration
}

const (
	defaultModel   = "gpt-4o-mini"
	defaultRetries = 3
	defaultTimeout = 30 * time.Second
)

// OpenAI calls the chat-completion API with retry and backoff.
type OpenAI struct {
	client  *openai.Client
	model   string
	temp    float32
	retries int
	timeout time.Duration
	log     *slog.Logger
}

var _ Client = (*OpenAI)(nil)

// New builds an OpenAI-backed client. The API key is required; every
// other option has a default.
func New(opts Options) (*OpenAI, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("llm: API key not set")
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultRetries
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	slog.Info("initializing LLM client", "model", opts.Model)
	return &OpenAI{
		client:  openai.NewClient(opts.APIKey),
		model:   opts.Model,
		temp:    opts.Temperature,
		retries: opts.MaxRetries,
		timeout: opts.Timeout,
		log:     slog.With("component", "llm"),
	}, nil
}

// Judge asks the provider for an independent asymptotic analysis of
// the pseudocode and parses the structured reply.
func (c *OpenAI) Judge(ctx context.Context, pseudocode string) (Judgment, error) {
	raw, err := c.complete(ctx, judgePrompt(pseudocode))
	if err != nil {
		return Judgment{}, err
	}
	j, err := parseJudgment(raw)
	if err != nil {
		c.log.Error("unparseable judgment", "error", err)
		return Judgment{}, err
	}
	return j, nil
}

// Translate converts pseudocode in a foreign notation, or a natural-
// language description, into the dialect the deterministic analyzer
// parses.
func (c *OpenAI) Translate(ctx context.Context, input string) (string, error) {
	raw, err := c.complete(ctx, translatePrompt(input))
	if err != nil {
		return "", err
	}
	return stripFences(raw), nil
}

func (c *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<attempt) * time.Second
			c.log.Warn("retrying LLM call", "attempt", attempt+1, "backoff", backoff)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(callCtx, req)
		cancel()
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("llm: provider returned no choices")
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("llm: call failed after %d attempts: %w", c.retries, lastErr)
}

// parseJudgment extracts the JSON object from the reply, tolerating
// code fences and surrounding prose.
func parseJudgment(raw string) (Judgment, error) {
	s := stripFences(raw)
	if i := strings.IndexByte(s, '{'); i >= 0 {
		if j := strings.LastIndexByte(s, '}'); j > i {
			s = s[i : j+1]
		}
	}
	var jm Judgment
	if err := json.Unmarshal([]byte(s), &jm); err != nil {
		return Judgment{}, fmt.Errorf("llm: invalid judgment payload: %w", err)
	}
	if jm.O == "" && jm.Omega == "" && jm.Theta == "" {
		return Judgment{}, fmt.Errorf("llm: judgment carries no bounds")
	}
	return jm, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
