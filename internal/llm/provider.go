package llm

import (
	"context"
	"errors"

	"chat-relay/internal/domain"
)

// ErrNoMessages indica que no hay turnos que enviar al proveedor.
var ErrNoMessages = errors.New("llm: no messages to send")

// Completer envía una transcripción ya normalizada al proveedor y devuelve el resultado decodificado.
type Completer interface {
	Complete(ctx context.Context, messages []domain.ChatMessage) (Completion, error)
	Close() error
}

// Completion es el resultado del proveedor decodificado una sola vez.
// Reply es nil cuando no hay opciones o la primera no trae contenido de texto.
type Completion struct {
	Reply *string
}

// TextCompletion construye un Completion con respuesta presente.
func TextCompletion(text string) Completion {
	return Completion{Reply: &text}
}
