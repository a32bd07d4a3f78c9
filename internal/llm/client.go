package llm

import "context"

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client abstracts the generative backend. GenerateVision takes raw image
// bytes; providers without a vision entry point return an error.
type Client interface {
	Generate(ctx context.Context, prompt string) (Response, error)
	GenerateVision(ctx context.Context, image []byte, prompt string) (Response, error)
}
