package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/store"
	"resumeforge/internal/types"
)

var testLogger = errors.NewLogger(slog.LevelError)

// fakeProvider counts calls and answers with canned data.
type fakeProvider struct {
	extractCalls   int
	normalizeCalls int
	normalizeData  types.ResumeData
	normalizeErr   error
	lastNormalize  types.NormalizeResumeInput
}

func (f *fakeProvider) ExtractDocumentText(ctx context.Context, input types.ExtractTextInput) (types.ExtractTextOutput, *ai.TokenUsage, error) {
	f.extractCalls++
	return types.ExtractTextOutput{Text: "extracted"}, nil, nil
}

func (f *fakeProvider) NormalizeResume(ctx context.Context, input types.NormalizeResumeInput) (types.ResumeData, *ai.TokenUsage, error) {
	f.normalizeCalls++
	f.lastNormalize = input
	if f.normalizeErr != nil {
		return types.ResumeData{}, nil, f.normalizeErr
	}
	data := f.normalizeData
	data.ApplyDefaults()
	return data, &ai.TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150}, nil
}

func (f *fakeProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) Close() error { return nil }

func sampleData() types.ResumeData {
	return types.ResumeData{
		PersonalInfo: types.PersonalInfo{
			Name:  "Jane Doe",
			Role:  "Backend Engineer",
			Email: "jane@example.com",
		},
		Skills: types.Skills{Technical: []string{"Go"}},
	}
}

func newTestService(t *testing.T, provider *fakeProvider, records store.RecordStore, remote bool) *Service {
	t.Helper()
	extractor := extract.NewService(&config.ExtractConfig{Mode: extract.ModeGemini}, provider, testLogger)
	backup := store.NewBackup(filepath.Join(t.TempDir(), "backup.json"), testLogger)
	return NewService(extractor, provider, records, backup, remote, testLogger)
}

func writeResumeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write resume file: %v", err)
	}
	return path
}

func TestIngestNewUser(t *testing.T) {
	provider := &fakeProvider{normalizeData: sampleData()}
	records := store.NewMemoryStore()
	svc := newTestService(t, provider, records, false)

	path := writeResumeFile(t, "Jane Doe, Backend Engineer")

	result, usage, err := svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.txt",
		TargetRole:   "Backend Engineer",
		Pricing:      "basic",
		Template:     "glass",
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if !result.NewUser {
		t.Error("Expected NewUser for an upload without a username")
	}
	if result.Credentials == nil {
		t.Fatal("Expected credentials for a new user")
	}
	if len(result.Credentials.Username) != 8 || len(result.Credentials.Password) != 8 {
		t.Errorf("Expected 8-char credentials, got %q / %q",
			result.Credentials.Username, result.Credentials.Password)
	}
	if result.StoreSaved {
		t.Error("StoreSaved must be false when no remote store is configured")
	}
	if result.Data.PersonalInfo.Name != "Jane Doe" {
		t.Errorf("Expected normalized data, got name %q", result.Data.PersonalInfo.Name)
	}
	if usage.Normalize == nil || usage.Normalize.TotalTokens != 150 {
		t.Error("Expected normalize token usage to be reported")
	}
	if provider.normalizeCalls != 1 {
		t.Errorf("Expected one normalize call, got %d", provider.normalizeCalls)
	}

	// The record is retrievable with the issued credentials.
	stored, err := records.GetUser(context.Background(), result.Credentials.Username)
	if err != nil {
		t.Fatalf("Stored record not found: %v", err)
	}
	if stored.Password != result.Credentials.Password {
		t.Error("Stored password must match the issued credentials")
	}
	if stored.Pricing != types.PricingBasic {
		t.Errorf("Expected pricing basic, got %s", stored.Pricing)
	}
	if stored.Template != "glass" {
		t.Errorf("Expected template glass, got %s", stored.Template)
	}
}

func TestIngestRemoteStoreSaved(t *testing.T) {
	provider := &fakeProvider{normalizeData: sampleData()}
	svc := newTestService(t, provider, store.NewMemoryStore(), true)

	path := writeResumeFile(t, "Jane Doe")

	result, _, err := svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.txt",
		TargetRole:   "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if !result.StoreSaved {
		t.Error("Expected StoreSaved with a remote store that accepts writes")
	}
}

func TestIngestEmptyTextSkipsNormalization(t *testing.T) {
	provider := &fakeProvider{normalizeData: sampleData()}
	svc := newTestService(t, provider, store.NewMemoryStore(), false)

	path := writeResumeFile(t, "   \n  ")

	result, _, err := svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.txt",
		TargetRole:   "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if provider.normalizeCalls != 0 {
		t.Errorf("Empty text must not reach the normalize model, got %d calls", provider.normalizeCalls)
	}
	if result.Data.PersonalInfo.Photo != types.DefaultPhotoPlaceholder {
		t.Error("Empty resume should still carry defaults")
	}
	if result.Data.Education == nil || result.Data.Experience == nil {
		t.Error("Empty resume collections should be non-nil")
	}
}

func TestIngestUnsupportedFileNeverCallsAI(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(t, provider, store.NewMemoryStore(), false)

	path := filepath.Join(t.TempDir(), "resume.docx")
	if err := os.WriteFile(path, []byte("doc"), 0600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	_, _, err := svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.docx",
	})
	if err == nil {
		t.Fatal("Expected error for unsupported file type")
	}
	if provider.extractCalls != 0 || provider.normalizeCalls != 0 {
		t.Error("Rejected upload must not trigger any AI call")
	}
}

func TestIngestExistingUserKeepsPassword(t *testing.T) {
	provider := &fakeProvider{normalizeData: sampleData()}
	records := store.NewMemoryStore()
	svc := newTestService(t, provider, records, false)

	// Seed an existing user.
	existing := types.UserRecord{
		TargetRole: "Old Role",
		Pricing:    types.PricingFree,
		Template:   "minimal",
		Password:   "keepme12",
	}
	if err := records.PutUser(context.Background(), "jane1234", existing); err != nil {
		t.Fatalf("Seeding failed: %v", err)
	}

	path := writeResumeFile(t, "Jane Doe, updated resume")

	result, _, err := svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.txt",
		Username:     "jane1234",
		TargetRole:   "Backend Engineer",
		Pricing:      "premium",
		Template:     "luxury",
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	if result.NewUser {
		t.Error("Re-ingest for a known username must not be a new user")
	}
	if result.Credentials != nil {
		t.Error("Re-ingest must not issue new credentials")
	}

	stored, err := records.GetUser(context.Background(), "jane1234")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if stored.Password != "keepme12" {
		t.Errorf("Password must survive re-ingest, got %q", stored.Password)
	}
	if stored.TargetRole != "Backend Engineer" {
		t.Errorf("Expected updated target role, got %q", stored.TargetRole)
	}
	if stored.Template != "luxury" {
		t.Errorf("Expected updated template, got %q", stored.Template)
	}
}

func TestIngestUnknownUsernameFails(t *testing.T) {
	provider := &fakeProvider{normalizeData: sampleData()}
	svc := newTestService(t, provider, store.NewMemoryStore(), false)

	path := writeResumeFile(t, "Jane Doe")

	_, _, err := svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.txt",
		Username:     "ghost999",
	})
	if !store.IsNotFound(err) {
		t.Fatalf("Expected not-found for unknown username, got %v", err)
	}
}

func TestIngestDefaultsPricingAndTemplate(t *testing.T) {
	provider := &fakeProvider{normalizeData: sampleData()}
	records := store.NewMemoryStore()
	svc := newTestService(t, provider, records, false)

	path := writeResumeFile(t, "Jane Doe")

	result, _, err := svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.txt",
		Pricing:      "platinum", // unknown plan
		Template:     "brutalist", // unknown template
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	stored, err := records.GetUser(context.Background(), result.Credentials.Username)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if stored.Pricing != types.PricingFree {
		t.Errorf("Unknown pricing should default to free, got %s", stored.Pricing)
	}
	if stored.Template != "minimal" {
		t.Errorf("Unknown template should default to minimal, got %s", stored.Template)
	}
}

func TestIngestPassesTemplateToNormalizer(t *testing.T) {
	provider := &fakeProvider{normalizeData: sampleData()}
	svc := newTestService(t, provider, store.NewMemoryStore(), false)

	path := writeResumeFile(t, "Jane Doe")

	_, _, err := svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.txt",
		TargetRole:   "Backend Engineer",
		Template:     "glass",
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if provider.lastNormalize.Template != "glass" {
		t.Errorf("Normalizer received template %q, want glass", provider.lastNormalize.Template)
	}
	if provider.lastNormalize.TargetRole != "Backend Engineer" {
		t.Errorf("Normalizer received target role %q", provider.lastNormalize.TargetRole)
	}

	// Unknown template names reach the normalizer already defaulted.
	_, _, err = svc.Ingest(context.Background(), Request{
		FilePath:     path,
		OriginalName: "resume.txt",
		TargetRole:   "Backend Engineer",
		Template:     "brutalist",
	})
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if provider.lastNormalize.Template != "minimal" {
		t.Errorf("Normalizer received template %q, want minimal", provider.lastNormalize.Template)
	}
}

func TestLogin(t *testing.T) {
	provider := &fakeProvider{}
	records := store.NewMemoryStore()
	svc := newTestService(t, provider, records, false)

	record := types.UserRecord{
		TargetRole: "Backend Engineer",
		Password:   "secret12",
		Resume:     sampleData(),
	}
	if err := records.PutUser(context.Background(), "jane1234", record); err != nil {
		t.Fatalf("Seeding failed: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "jane1234", "secret12")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if user.Username != "jane1234" {
			t.Errorf("Expected username jane1234, got %q", user.Username)
		}
		if user.Resume.PersonalInfo.Name != "Jane Doe" {
			t.Errorf("Expected resume in login response, got %q", user.Resume.PersonalInfo.Name)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "jane1234", "wrong123")
		if err == nil {
			t.Fatal("Expected error for wrong password")
		}
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ghost999", "secret12")
		if err == nil {
			t.Fatal("Expected error for unknown user")
		}
	})

	t.Run("IndistinguishableFailures", func(t *testing.T) {
		_, wrongPass := svc.Login(context.Background(), "jane1234", "wrong123")
		_, unknownUser := svc.Login(context.Background(), "ghost999", "secret12")
		if wrongPass.Error() != unknownUser.Error() {
			t.Error("Login failures must not reveal whether the username exists")
		}
	})
}

func TestLookup(t *testing.T) {
	provider := &fakeProvider{}
	records := store.NewMemoryStore()
	svc := newTestService(t, provider, records, false)

	record := types.UserRecord{
		TargetRole: "Backend Engineer",
		Pricing:    types.PricingPremium,
		Template:   "glass",
		Password:   "secret12",
		Resume:     sampleData(),
	}
	if err := records.PutUser(context.Background(), "jane1234", record); err != nil {
		t.Fatalf("Seeding failed: %v", err)
	}

	user, err := svc.Lookup(context.Background(), "jane1234")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if user.Username != "jane1234" || user.Template != "glass" {
		t.Errorf("Unexpected lookup result: %+v", user)
	}

	if _, err := svc.Lookup(context.Background(), "ghost999"); !store.IsNotFound(err) {
		t.Errorf("Expected not-found for unknown user, got %v", err)
	}
}
