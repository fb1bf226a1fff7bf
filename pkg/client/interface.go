package client

import "context"

// VisionClient is the single capability this module consumes from a
// generative vision backend: one prompt, one image, one text reply.
// Implementations live in pkg/gemini, pkg/ollama and pkg/llamacpp.
type VisionClient interface {
	Generate(ctx context.Context, prompt, imageB64, mimeType string) (string, error)
}
