package llm

import (
	"context"
	"fmt"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/platform/obs"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = openai.ChatModelGPT4oMini

// OpenAIClient backs the parser and phraser with an OpenAI chat model.
// Any OpenAI-compatible endpoint works through the base URL override.
type OpenAIClient struct {
	client openai.Client
	model  openai.ChatModel
}

var (
	_ agent.Parser  = (*OpenAIClient)(nil)
	_ agent.Phraser = (*OpenAIClient)(nil)
)

// NewOpenAIClient builds a client for the given credentials. baseURL
// and model are optional; empty values take the service defaults.
func NewOpenAIClient(apiKey, baseURL, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai client: api key must be non-empty")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	m := openai.ChatModel(model)
	if m == "" {
		m = defaultOpenAIModel
	}

	return &OpenAIClient{client: openai.NewClient(opts...), model: m}, nil
}

// Parse asks the model to classify one query per the JSON contract.
func (c *OpenAIClient) Parse(ctx context.Context, query string) (agent.Request, error) {
	reply, err := c.complete(ctx, parseSystemPrompt, query, maxParseTokens)
	if err != nil {
		return nil, err
	}
	return decodeRequest(reply)
}

// Phrase rewords a rendered report for conversational output.
func (c *OpenAIClient) Phrase(ctx context.Context, query string, ans *agent.Answer) (string, error) {
	return c.complete(ctx, phraseSystemPrompt, phraseContent(query, ans), maxPhraseTokens)
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string, maxTokens int64) (reply string, err error) {
	defer obs.Time(ctx, "llm.openai")(&err)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(llmTemperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai completion: empty reply")
	}
	return resp.Choices[0].Message.Content, nil
}
