package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"chat-relay/internal/domain"
)

// ErrInvalidChatRequest cubre userId ausente, vacío o cero, o messages que no es un arreglo.
var ErrInvalidChatRequest = errors.New("userId and messages (array) are required")

var errNullMessage = errors.New("message is null")

type chatRequestEnvelope struct {
	UserID   json.RawMessage `json:"userId"`
	Messages json.RawMessage `json:"messages"`
}

// DecodeChatRequest valida el cuerpo de POST /. Un cuerpo vacío equivale a {}.
// Devuelve ErrInvalidChatRequest para fallos de validación; JSON mal formado o
// mensajes que no se pueden decodificar devuelven otro error.
func DecodeChatRequest(body []byte) (domain.ChatRequest, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return domain.ChatRequest{}, ErrInvalidChatRequest
	}

	var env chatRequestEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// el cuerpo es JSON válido pero no un objeto
			return domain.ChatRequest{}, ErrInvalidChatRequest
		}
		return domain.ChatRequest{}, fmt.Errorf("decode chat request: %w", err)
	}

	userID, ok := decodeUserID(env.UserID)
	if !ok {
		return domain.ChatRequest{}, ErrInvalidChatRequest
	}

	raw := bytes.TrimSpace(env.Messages)
	if len(raw) == 0 || raw[0] != '[' {
		return domain.ChatRequest{}, ErrInvalidChatRequest
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return domain.ChatRequest{}, fmt.Errorf("decode chat messages: %w", err)
	}
	messages := make([]domain.ChatMessage, 0, len(elems))
	for i, elem := range elems {
		if bytes.Equal(bytes.TrimSpace(elem), []byte("null")) {
			return domain.ChatRequest{}, fmt.Errorf("decode chat message %d: %w", i, errNullMessage)
		}
		var m domain.ChatMessage
		if err := json.Unmarshal(elem, &m); err != nil {
			return domain.ChatRequest{}, fmt.Errorf("decode chat message %d: %w", i, err)
		}
		messages = append(messages, m)
	}

	return domain.ChatRequest{UserID: userID, Messages: messages}, nil
}

// decodeUserID acepta un string no vacío o un número distinto de cero, que se
// conserva con su forma literal.
func decodeUserID(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	var userID string
	if err := json.Unmarshal(raw, &userID); err == nil {
		return userID, userID != ""
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", false
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		return "", false
	}
	return n.String(), true
}
