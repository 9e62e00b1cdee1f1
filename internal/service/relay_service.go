package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"chat-relay/internal/domain"
	"chat-relay/internal/llm"
)

var ErrRelayNotConfigured = errors.New("relay service not configured")

// RelayService reenvía la transcripción al proveedor y da forma a la respuesta.
// maxConcurrent limita las llamadas simultáneas al proveedor; las demás esperan turno.
type RelayService struct {
	logger    *zap.Logger
	completer llm.Completer
	slots     *semaphore.Weighted
}

func NewRelayService(logger *zap.Logger, completer llm.Completer, maxConcurrent int) *RelayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &RelayService{
		logger:    logger,
		completer: completer,
		slots:     semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

func (s *RelayService) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatReply, error) {
	if s == nil || s.completer == nil {
		return domain.ChatReply{}, ErrRelayNotConfigured
	}

	s.logger.Info("chat relay request",
		zap.String("user_id", req.UserID),
		zap.Int("message_count", len(req.Messages)),
	)

	messages := NormalizeMessages(req.Messages)

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return domain.ChatReply{}, fmt.Errorf("acquire relay slot: %w", err)
	}
	defer s.slots.Release(1)

	completion, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return domain.ChatReply{}, fmt.Errorf("upstream completion: %w", err)
	}

	// TODO: persistir la conversación por userId cuando exista un almacén.
	return domain.ChatReply{Reply: ExtractReply(completion)}, nil
}

// NormalizeMessages copia los mensajes con el rol ya normalizado; content no se toca.
func NormalizeMessages(messages []domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(messages))
	for i, m := range messages {
		out[i] = domain.ChatMessage{
			Role:    domain.NormalizeRole(m.Role),
			Content: m.Content,
		}
	}
	return out
}

// ExtractReply devuelve el texto recortado, aunque quede vacío. FallbackReply solo aplica
// cuando el proveedor no entregó texto.
func ExtractReply(c llm.Completion) string {
	if c.Reply == nil {
		return domain.FallbackReply
	}
	return strings.TrimSpace(*c.Reply)
}
