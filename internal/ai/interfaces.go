package ai

import (
	"context"

	"resumeforge/internal/types"
)

// AIProvider interface for different AI implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	ExtractDocumentText(ctx context.Context, input types.ExtractTextInput) (types.ExtractTextOutput, *TokenUsage, error)
	NormalizeResume(ctx context.Context, input types.NormalizeResumeInput) (types.ResumeData, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}
