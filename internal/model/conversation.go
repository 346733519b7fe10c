package model

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Turn is one message in a conversation.
type Turn struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Conversation is the payload handed to a generation provider.
// It is always exactly two turns: system first, then user.
type Conversation [2]Turn

// NewConversation builds a [system, user] conversation.
func NewConversation(system, user string) Conversation {
	return Conversation{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}

// System returns the system turn.
func (c Conversation) System() Turn {
	return c[0]
}

// User returns the user turn.
func (c Conversation) User() Turn {
	return c[1]
}
