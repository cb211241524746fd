package extract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

var testLogger = errors.NewLogger(slog.LevelError)

// fakeProvider counts calls so tests can assert that rejected uploads
// never reach the AI provider.
type fakeProvider struct {
	extractCalls   int
	normalizeCalls int
	extractText    string
	extractErr     error
}

func (f *fakeProvider) ExtractDocumentText(ctx context.Context, input types.ExtractTextInput) (types.ExtractTextOutput, *ai.TokenUsage, error) {
	f.extractCalls++
	if f.extractErr != nil {
		return types.ExtractTextOutput{}, nil, f.extractErr
	}
	return types.ExtractTextOutput{Text: f.extractText}, &ai.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, nil
}

func (f *fakeProvider) NormalizeResume(ctx context.Context, input types.NormalizeResumeInput) (types.ResumeData, *ai.TokenUsage, error) {
	f.normalizeCalls++
	return types.ResumeData{}, nil, nil
}

func (f *fakeProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func newTestService(mode string, provider ai.AIProvider) *Service {
	return NewService(&config.ExtractConfig{Mode: mode}, provider, testLogger)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestTextFileReadDirectly(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(ModeGemini, provider)

	path := writeTempFile(t, "resume.txt", "  Jane Doe\nSoftware Engineer\n  ")

	result, err := svc.Text(context.Background(), path, "resume.txt")
	if err != nil {
		t.Fatalf("Text() returned error: %v", err)
	}

	expected := "Jane Doe\nSoftware Engineer"
	if result.Text != expected {
		t.Errorf("Expected text %q, got %q", expected, result.Text)
	}
	if result.TokenUsage != nil {
		t.Error("Text file extraction should not report token usage")
	}
	if provider.extractCalls != 0 {
		t.Errorf("Text file should not hit the provider, got %d calls", provider.extractCalls)
	}
}

func TestMarkdownFileReadDirectly(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(ModeGemini, provider)

	path := writeTempFile(t, "resume.md", "# Jane Doe")

	result, err := svc.Text(context.Background(), path, "resume.md")
	if err != nil {
		t.Fatalf("Text() returned error: %v", err)
	}
	if result.Text != "# Jane Doe" {
		t.Errorf("Expected markdown content, got %q", result.Text)
	}
	if provider.extractCalls != 0 {
		t.Error("Markdown file should not hit the provider")
	}
}

func TestUnsupportedExtensionRejectedBeforeProviderCall(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(ModeGemini, provider)

	path := writeTempFile(t, "resume.docx", "binary-ish content")

	_, err := svc.Text(context.Background(), path, "resume.docx")
	if err == nil {
		t.Fatal("Expected error for unsupported file type")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeUnsupportedFormat {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeUnsupportedFormat, appErr.Code)
	}
	if appErr.Type != errors.ErrorTypeValidation {
		t.Errorf("Expected validation error type, got %s", appErr.Type)
	}

	if provider.extractCalls != 0 || provider.normalizeCalls != 0 {
		t.Error("Unsupported upload must not reach the AI provider")
	}
}

func TestPDFGeminiMode(t *testing.T) {
	provider := &fakeProvider{extractText: "extracted pdf text\n"}
	svc := newTestService(ModeGemini, provider)

	// Content is irrelevant here, the fake provider answers regardless.
	path := writeTempFile(t, "resume.pdf", "%PDF-1.4 stub")

	result, err := svc.Text(context.Background(), path, "resume.pdf")
	if err != nil {
		t.Fatalf("Text() returned error: %v", err)
	}

	if result.Text != "extracted pdf text" {
		t.Errorf("Expected trimmed provider text, got %q", result.Text)
	}
	if result.TokenUsage == nil || result.TokenUsage.TotalTokens != 15 {
		t.Error("Expected token usage from provider extraction")
	}
	if provider.extractCalls != 1 {
		t.Errorf("Expected exactly one provider call, got %d", provider.extractCalls)
	}
}

func TestPDFUnknownModeFails(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService("remote", provider)

	path := writeTempFile(t, "resume.pdf", "%PDF-1.4 stub")

	_, err := svc.Text(context.Background(), path, "resume.pdf")
	if err == nil {
		t.Fatal("Expected error for unknown extraction mode")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidConfig {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeInvalidConfig, appErr.Code)
	}
}

func TestMissingFileFails(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(ModeGemini, provider)

	_, err := svc.Text(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), "missing.txt")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if provider.extractCalls != 0 {
		t.Error("Missing file must not reach the AI provider")
	}
}
