package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	// DefaultGroqModel is used when no model is configured.
	DefaultGroqModel = "llama-3.1-8b-instant"
)

// Groq is a Provider backed by Groq's OpenAI-compatible chat completions.
type Groq struct {
	client openai.Client
	model  string
}

// NewGroq creates a Groq provider. An empty model selects the default.
func NewGroq(apiKey, model string) *Groq {
	if model == "" {
		model = DefaultGroqModel
	}
	return &Groq{
		client: openai.NewClient(
			option.WithBaseURL(groqBaseURL),
			option.WithAPIKey(apiKey),
		),
		model: model,
	}
}

// Name implements Provider.
func (g *Groq) Name() string { return "groq" }

// Complete implements Provider.
func (g *Groq) Complete(ctx context.Context, system, user string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(completionTemperature),
		MaxTokens:   openai.Int(completionMaxTokens),
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", errors.New("no text in response")
	}
	return answer, nil
}
