package chat

import (
	"context"
	"errors"
	"fmt"

	"perform-assistant/internal/logger"

	openai "github.com/sashabaranov/go-openai"
)

const (
	maxTokens   = 500
	temperature = 0.7
)

// Completer is the part of the LLM client the assistant needs.
type Completer interface {
	CreateChatCompletion(
		ctx context.Context,
		req openai.ChatCompletionRequest,
	) (openai.ChatCompletionResponse, error)
}

// Assistant answers chat messages with a mode-specific system prompt.
type Assistant struct {
	llm Completer
}

func NewAssistant(llm Completer) *Assistant {
	return &Assistant{llm: llm}
}

// NewOpenAIClient returns a client for an OpenAI-compatible API. baseURL
// may be empty to use the public OpenAI endpoint.
func NewOpenAIClient(apiKey string, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// Respond returns the model's answer. LLM failures are turned into an
// apology for the user rather than an error.
func (a *Assistant) Respond(ctx context.Context, message string) string {
	mode, query := ParseMode(message)
	p := profileFor(mode)

	resp, err := a.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err == nil && len(resp.Choices) == 0 {
		err = errors.New("model returned no choices")
	}
	if err != nil {
		logger.Error("llm completion failed", map[string]any{
			"mode":  string(mode),
			"model": p.model,
			"error": err.Error(),
		})
		return fmt.Sprintf("Sorry, I encountered an error: %v", err)
	}

	logger.Debug("llm completion", map[string]any{
		"mode":              string(mode),
		"model":             p.model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	})

	return resp.Choices[0].Message.Content
}
