package model

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a Q&A conversation. Conversations are not stored.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
