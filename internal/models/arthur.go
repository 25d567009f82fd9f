package models

// ChatMessage is one turn of the caller-supplied conversation history.
// The client resubmits the full history on every request; nothing is
// persisted server-side between requests.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ArthurChatRequest is the body of POST /api/arthur/chat.
type ArthurChatRequest struct {
	Messages       []ChatMessage `json:"messages"`
	OrganizationID string        `json:"organizationId"`
	UserID         string        `json:"userId"`
}

// ArthurUsage is token accounting accumulated across all model rounds
// of a single chat request.
type ArthurUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// ArthurChatResponse is the success body of POST /api/arthur/chat.
type ArthurChatResponse struct {
	Message string      `json:"message"`
	Usage   ArthurUsage `json:"usage"`
}
