package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chat-relay/internal/service"
)

const (
	errOnlyPost       = "Only POST allowed"
	errInternalServer = "Internal server error"

	maxChatBodyBytes = 1 << 20
)

// ChatHandler atiende el endpoint del relay de chat.
type ChatHandler struct {
	logger *zap.Logger
	relay  *service.RelayService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, relay *service.RelayService) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		relay:  relay,
	}
}

// Chat maneja POST /: valida el cuerpo, llama al proveedor y devuelve {"reply": ...}.
func (h *ChatHandler) Chat(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": errOnlyPost})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxChatBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, err)
		return
	}

	req, err := service.DecodeChatRequest(body)
	if errors.Is(err, service.ErrInvalidChatRequest) {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidChatRequest.Error()})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	reply, err := h.relay.Reply(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

// fail registra el error real y responde siempre con un mensaje genérico.
func (h *ChatHandler) fail(c *gin.Context, err error) {
	h.logger.Error("chat relay failed",
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
}
