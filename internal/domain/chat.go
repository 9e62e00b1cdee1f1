package domain

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// FallbackReply se devuelve cuando el proveedor no trae texto utilizable.
const FallbackReply = "Sorry, I couldn't generate a reply."

// ChatMessage es un turno de la conversación tal como lo envía el cliente móvil.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest es el cuerpo de POST /. UserID es opaco: no se usa para buscar ni guardar nada.
type ChatRequest struct {
	UserID   string        `json:"userId"`
	Messages []ChatMessage `json:"messages"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

// NormalizeRole devuelve "assistant" solo si role es exactamente "assistant"; cualquier otro valor es "user".
func NormalizeRole(role string) string {
	if role == RoleAssistant {
		return RoleAssistant
	}
	return RoleUser
}
