package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel     = "gpt-4o"
	DefaultMaxTokens = 100
)

var (
	ErrMissingAPIKey = errors.New("API key is empty")
	ErrNoMessage     = errors.New("failed to extract commit message from response")
)

type Options struct {
	Model string
	// APIBase overrides the OpenAI endpoint, e.g. for a proxy. Empty keeps
	// the library default.
	APIBase    string
	MaxTokens  int
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client sends a single chat completion request per call. The API key is
// supplied per call and never retained.
type Client struct {
	opts Options
}

func NewClient(opts Options) *Client {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return &Client{opts: opts}
}

func (c *Client) newOpenAIClient(apiKey string) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if c.opts.APIBase != "" {
		clientConfig.BaseURL = c.opts.APIBase
	}
	if c.opts.HTTPClient != nil {
		clientConfig.HTTPClient = c.opts.HTTPClient
	}
	return openai.NewClientWithConfig(clientConfig)
}

// Complete sends prompt as a single user message and returns the first
// choice's content, untrimmed.
func (c *Client) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	c.opts.Logger.Debug().
		Str("model", c.opts.Model).
		Int("max_tokens", c.opts.MaxTokens).
		Int("prompt_bytes", len(prompt)).
		Msg("requesting chat completion")

	resp, err := c.newOpenAIClient(apiKey).CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.opts.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens: c.opts.MaxTokens,
		},
	)
	if err != nil {
		// A choice whose content is not a string fails to decode.
		var typeErr *json.UnmarshalTypeError
		var reqErr *openai.RequestError
		if errors.As(err, &typeErr) && !errors.As(err, &reqErr) {
			return "", fmt.Errorf("%w: %w", ErrNoMessage, err)
		}
		return "", fmt.Errorf("failed to call LLM: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrNoMessage
	}

	c.opts.Logger.Debug().
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("chat completion received")

	return resp.Choices[0].Message.Content, nil
}
