package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/types"
	"resumeforge/internal/utils"

	"github.com/ledongthuc/pdf"
)

// Supported extraction modes
const (
	ModeGemini = "gemini"
	ModeLocal  = "local"
)

// Result carries the recovered text and, when the Gemini path ran,
// the token usage of the extraction call.
type Result struct {
	Text       string
	TokenUsage *ai.TokenUsage
}

// Service turns an uploaded document into plain text. Text files are read
// directly, PDFs go through the configured extraction mode, everything
// else is rejected before any provider call is made.
type Service struct {
	mode     string
	provider ai.AIProvider
	logger   *forgeErrors.Logger
}

// NewService creates an extraction service with the configured mode
func NewService(cfg *config.ExtractConfig, provider ai.AIProvider, logger *forgeErrors.Logger) *Service {
	return &Service{
		mode:     cfg.Mode,
		provider: provider,
		logger:   logger,
	}
}

// Text extracts plain text from the file at filePath. The original upload
// filename decides the handling, since filePath usually points at a
// temporary copy without a meaningful extension.
func (s *Service) Text(ctx context.Context, filePath, originalName string) (Result, error) {
	if err := utils.ValidateInputFile(filePath); err != nil {
		return Result{}, forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Cannot read uploaded file", err)
	}

	ext := utils.GetFileExtension(originalName)

	switch {
	case utils.IsTextFile(originalName):
		text, err := s.readTextFile(filePath)
		if err != nil {
			return Result{}, err
		}
		s.logger.Debug("Extracted text from plain text upload",
			"file", originalName,
			"text_length", len(text))
		return Result{Text: text}, nil

	case ext == ".pdf":
		return s.extractPDF(ctx, filePath, originalName)

	default:
		return Result{}, forgeErrors.NewValidationError(forgeErrors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported file type '%s'. Supported types: .pdf, .txt, .md", ext), nil)
	}
}

// readTextFile reads a text upload as-is
func (s *Service) readTextFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Failed to read text file", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// extractPDF dispatches PDF extraction to the configured mode
func (s *Service) extractPDF(ctx context.Context, filePath, originalName string) (Result, error) {
	switch s.mode {
	case ModeLocal:
		text, err := s.localPDFText(filePath)
		if err != nil {
			return Result{}, err
		}
		s.logger.Debug("Extracted text from PDF locally",
			"file", originalName,
			"text_length", len(text))
		return Result{Text: text}, nil

	case ModeGemini:
		output, usage, err := s.provider.ExtractDocumentText(ctx, types.ExtractTextInput{
			FilePath:    filePath,
			MIMEType:    "application/pdf",
			DisplayName: originalName,
		})
		if err != nil {
			return Result{}, err
		}
		s.logger.Debug("Extracted text from PDF via Gemini",
			"file", originalName,
			"text_length", len(output.Text))
		return Result{Text: strings.TrimSpace(output.Text), TokenUsage: usage}, nil

	default:
		return Result{}, forgeErrors.NewConfigError(forgeErrors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unknown extraction mode: %s", s.mode), nil)
	}
}

// localPDFText extracts text from a PDF without any network call
func (s *Service) localPDFText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", forgeErrors.NewIOError(forgeErrors.ErrCodeInvalidFormat,
			"Failed to open PDF", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			s.logger.Warn("Failed to close PDF file", "error", closeErr.Error())
		}
	}()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", forgeErrors.NewIOError(forgeErrors.ErrCodeInvalidFormat,
			"Failed to extract text from PDF", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", forgeErrors.NewIOError(forgeErrors.ErrCodeInvalidFormat,
			"Failed to read PDF text stream", err)
	}

	return strings.TrimSpace(buf.String()), nil
}
