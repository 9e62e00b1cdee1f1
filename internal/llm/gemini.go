package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"chat-relay/internal/domain"
)

const geminiRoleModel = "model"

// ErrTrailingAssistantTurn indica un transcript que termina en un turno del asistente.
// El SDK de Gemini siempre envía el último turno con rol user.
var ErrTrailingAssistantTurn = errors.New("llm: gemini needs the last turn to come from the user")

type geminiSendFunc func(ctx context.Context, history []*genai.Content, parts ...genai.Part) (*genai.GenerateContentResponse, error)

// GeminiClient implementa Completer sobre la API de Gemini.
type GeminiClient struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
	send    geminiSendFunc
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	c := &GeminiClient{
		client:  client,
		model:   client.GenerativeModel(model),
		timeout: timeout,
	}
	c.send = c.sendChat
	return c, nil
}

// Complete usa todos los turnos menos el último como historial y envía el último,
// que debe ser del usuario.
func (c *GeminiClient) Complete(ctx context.Context, messages []domain.ChatMessage) (Completion, error) {
	history, last, err := toGeminiHistory(messages)
	if err != nil {
		return Completion{}, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.send(ctx, history, last.Parts...)
	if err != nil {
		return Completion{}, fmt.Errorf("gemini send message: %w", err)
	}
	return completionFromGemini(resp), nil
}

func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *GeminiClient) sendChat(ctx context.Context, history []*genai.Content, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	cs := c.model.StartChat()
	cs.History = history
	return cs.SendMessage(ctx, parts...)
}

func toGeminiHistory(messages []domain.ChatMessage) ([]*genai.Content, *genai.Content, error) {
	if len(messages) == 0 {
		return nil, nil, ErrNoMessages
	}
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := domain.RoleUser
		if m.Role == domain.RoleAssistant {
			role = geminiRoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	last := contents[len(contents)-1]
	if last.Role != domain.RoleUser {
		return nil, nil, ErrTrailingAssistantTurn
	}
	return contents[:len(contents)-1], last, nil
}

func completionFromGemini(resp *genai.GenerateContentResponse) Completion {
	if resp == nil || len(resp.Candidates) == 0 {
		return Completion{}
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return Completion{}
	}
	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return Completion{}
	}
	return TextCompletion(sb.String())
}
