package llm

import (
	"context"
	"fmt"
	"strings"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/platform/obs"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = anthropic.Model("claude-3-5-haiku-latest")

// AnthropicClient backs the parser and phraser with a Claude model.
type AnthropicClient struct {
	client anthropic.Client
	model  anthropic.Model
}

var (
	_ agent.Parser  = (*AnthropicClient)(nil)
	_ agent.Phraser = (*AnthropicClient)(nil)
)

// NewAnthropicClient builds a client for the given credentials.
// baseURL and model are optional; empty values take the service
// defaults.
func NewAnthropicClient(apiKey, baseURL, model string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic client: api key must be non-empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	m := anthropic.Model(model)
	if m == "" {
		m = defaultAnthropicModel
	}

	return &AnthropicClient{client: anthropic.NewClient(opts...), model: m}, nil
}

// Parse asks the model to classify one query per the JSON contract.
func (c *AnthropicClient) Parse(ctx context.Context, query string) (agent.Request, error) {
	reply, err := c.complete(ctx, parseSystemPrompt, query, maxParseTokens)
	if err != nil {
		return nil, err
	}
	return decodeRequest(reply)
}

// Phrase rewords a rendered report for conversational output.
func (c *AnthropicClient) Phrase(ctx context.Context, query string, ans *agent.Answer) (string, error) {
	return c.complete(ctx, phraseSystemPrompt, phraseContent(query, ans), maxPhraseTokens)
}

func (c *AnthropicClient) complete(ctx context.Context, system, user string, maxTokens int64) (reply string, err error) {
	defer obs.Time(ctx, "llm.anthropic")(&err)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(llmTemperature),
		System: []anthropic.TextBlockParam{
			{Text: system, Type: "text"},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic completion: %w", err)
	}

	var text strings.Builder
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("anthropic completion: empty reply")
	}
	return text.String(), nil
}
