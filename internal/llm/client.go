package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"chat-relay/internal/domain"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implementa Completer usando la API de chat completions de OpenAI (o compatible).
type OpenAIClient struct {
	api   *openai.Client
	model string
}

// NewOpenAIClient construye el cliente. timeout 0 deja el comportamiento por defecto del SDK.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &OpenAIClient{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.ChatMessage) (Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return Completion{}, fmt.Errorf("create chat completion: %w", err)
	}

	return completionFromOpenAI(resp), nil
}

func (c *OpenAIClient) Close() error { return nil }

func toOpenAIMessages(messages []domain.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	return out
}

// completionFromOpenAI toma solo la primera opción. El SDK decodifica content null como "",
// así que un contenido vacío se trata como ausente.
func completionFromOpenAI(resp openai.ChatCompletionResponse) Completion {
	if len(resp.Choices) == 0 {
		return Completion{}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return Completion{}
	}
	return TextCompletion(content)
}
