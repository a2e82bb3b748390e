package models

// Chat transcripts are ephemeral: the client holds them and replays the
// history on every request. Nothing here is persisted.

const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
