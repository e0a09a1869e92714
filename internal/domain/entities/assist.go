package entities

// Reply sources, in probe order. The gateway's response shape is not stable,
// so every reply records which shape it was parsed from.
const (
	AssistSourceText     = "text"
	AssistSourceResponse = "response"
	AssistSourceAlt      = "Response"
	AssistSourceContent  = "content"
	AssistSourceMessage  = "message"
	AssistSourceField    = "field"
	AssistSourceRaw      = "raw"
)

// AssistReply is a parsed gateway reply.
type AssistReply struct {
	Text string `json:"text"`
	// Source names the shape the text was extracted from. For
	// AssistSourceField, Field holds the property name that matched.
	Source string `json:"source"`
	Field  string `json:"field,omitempty"`
}

type ChatInput struct {
	Prompt string `json:"prompt" form:"prompt" binding:"required"`
	Model  string `json:"model" form:"model"`
}

type ImprovePromptInput struct {
	Prompt string `json:"prompt" form:"prompt" binding:"required"`
	Target string `json:"target" form:"target"`
}

type GenerateImageInput struct {
	Prompt string `json:"prompt" form:"prompt" binding:"required"`
	Model  string `json:"model" form:"model"`
}

type ImprovePromptResult struct {
	Prompt string `json:"prompt"`
	// Improved is false when the gateway reply had no recognizable shape
	// and the original prompt was returned unchanged.
	Improved bool `json:"improved"`
}
