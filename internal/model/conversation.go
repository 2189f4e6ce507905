package model

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the transcript label for the role.
func (r Role) Label() string {
	if r == RoleAssistant {
		return "Assistant"
	}
	return "User"
}

// ConversationTurn is a single message in the caller-owned chat history.
type ConversationTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// RecentTurns returns at most the last limit turns, preserving order.
// The returned slice aliases history and must not be mutated.
func RecentTurns(history []ConversationTurn, limit int) []ConversationTurn {
	if limit <= 0 {
		return nil
	}
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
