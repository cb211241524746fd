package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/ingest"
	"resumeforge/internal/observability"
	"resumeforge/internal/store"
	"resumeforge/internal/types"
)

// stubProvider satisfies ai.AIProvider for handler tests without any
// network access.
type stubProvider struct {
	normalized types.ResumeData
}

func (p *stubProvider) ExtractDocumentText(ctx context.Context, input types.ExtractTextInput) (types.ExtractTextOutput, *ai.TokenUsage, error) {
	return types.ExtractTextOutput{Text: "stub"}, nil, nil
}

func (p *stubProvider) NormalizeResume(ctx context.Context, input types.NormalizeResumeInput) (types.ResumeData, *ai.TokenUsage, error) {
	data := p.normalized
	data.ApplyDefaults()
	return data, &ai.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, nil
}

func (p *stubProvider) GetModelInfo(ctx context.Context) *ai.ModelInfo {
	return &ai.ModelInfo{Name: "stub-model", Available: true}
}

func (p *stubProvider) Close() error { return nil }

func newTestServer(t *testing.T) (*Server, *observability.ObservabilityManager, *store.MemoryStore) {
	t.Helper()

	logger := forgeErrors.NewLogger(slog.LevelError)
	records := store.NewMemoryStore()

	provider := &stubProvider{
		normalized: types.ResumeData{
			PersonalInfo: types.PersonalInfo{
				Name:  "Jane Doe",
				Role:  "Backend Engineer",
				Email: "jane@example.com",
			},
			Skills: types.Skills{Technical: []string{"Go"}, Soft: []string{"Mentoring"}},
		},
	}
	extractor := extract.NewService(&config.ExtractConfig{Mode: extract.ModeLocal}, provider, logger)
	ingestSvc := ingest.NewService(extractor, provider, records, nil, false, logger)

	srv := NewServer(&config.Config{}, ServerConfig{
		Host:           "127.0.0.1",
		Port:           "0",
		Version:        "test",
		MaxRequestSize: 1 << 20,
	}, Services{
		Ingest:   ingestSvc,
		Feedback: store.NewFeedbackBoard(),
	}, logger)

	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("Failed to create observability manager: %v", err)
	}

	return srv, om, records
}

func seedUser(t *testing.T, records *store.MemoryStore, username, password string) {
	t.Helper()

	record := types.UserRecord{
		TargetRole: "Backend Engineer",
		Pricing:    types.PricingFree,
		Template:   "minimal",
		Password:   password,
		Resume: types.ResumeData{
			PersonalInfo: types.PersonalInfo{
				Name:  "Jane Doe",
				Role:  "Backend Engineer",
				Email: "jane@example.com",
			},
		},
	}
	record.Resume.ApplyDefaults()

	if err := records.PutUser(context.Background(), username, record); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	srv, om, records := newTestServer(t)
	seedUser(t, records, "jane1234", "secret12")
	mux := srv.setupRoutes(om)

	unknownUser := postJSON(t, mux, "/login", LoginRequest{Username: "ghost999", Password: "secret12"})
	wrongPassword := postJSON(t, mux, "/login", LoginRequest{Username: "jane1234", Password: "wrong"})

	if unknownUser.Code != http.StatusUnauthorized {
		t.Errorf("Unknown user login returned %d, want %d", unknownUser.Code, http.StatusUnauthorized)
	}
	if wrongPassword.Code != http.StatusUnauthorized {
		t.Errorf("Wrong password login returned %d, want %d", wrongPassword.Code, http.StatusUnauthorized)
	}

	// A caller must not be able to tell which of the two failed.
	if unknownUser.Body.String() != wrongPassword.Body.String() {
		t.Errorf("Login failure responses differ:\n%s\n%s", unknownUser.Body.String(), wrongPassword.Body.String())
	}
}

func TestLoginSuccessOmitsPassword(t *testing.T) {
	srv, om, records := newTestServer(t)
	seedUser(t, records, "jane1234", "secret12")
	mux := srv.setupRoutes(om)

	rec := postJSON(t, mux, "/login", LoginRequest{Username: "jane1234", Password: "secret12"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Login returned %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var response map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	user, ok := response["user"].(map[string]any)
	if !ok {
		t.Fatalf("Response missing user object: %v", response)
	}
	if user["username"] != "jane1234" {
		t.Errorf("Unexpected username: %v", user["username"])
	}
	if _, exists := user["password"]; exists {
		t.Error("Login response must not contain the password")
	}
	if strings.Contains(rec.Body.String(), "secret12") {
		t.Error("Login response leaked the password value")
	}
}

func TestLoginMissingFields(t *testing.T) {
	srv, om, _ := newTestServer(t)
	mux := srv.setupRoutes(om)

	rec := postJSON(t, mux, "/login", LoginRequest{Username: "jane1234"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Login without password returned %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUserLookup(t *testing.T) {
	srv, om, records := newTestServer(t)
	seedUser(t, records, "jane1234", "secret12")
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodGet, "/users/jane1234", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Lookup returned %d, want %d", rec.Code, http.StatusOK)
	}

	var user types.SanitizedUser
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if user.Username != "jane1234" {
		t.Errorf("Unexpected username: %q", user.Username)
	}
	if !strings.Contains(rec.Body.String(), `"fileData"`) {
		t.Error("Profile payload must be nested under the fileData key")
	}
	if strings.Contains(rec.Body.String(), "secret12") {
		t.Error("Lookup response leaked the password value")
	}
}

func TestUserLookupUnknown(t *testing.T) {
	srv, om, _ := newTestServer(t)
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodGet, "/users/ghost999", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Unknown user lookup returned %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestFeedbackFlow(t *testing.T) {
	srv, om, _ := newTestServer(t)
	mux := srv.setupRoutes(om)

	rec := postJSON(t, mux, "/feedback", FeedbackRequest{
		Name:    "Sam",
		Email:   "sam@example.com",
		Message: "Great tool",
		Rating:  5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Feedback post returned %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var entry types.Feedback
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode feedback entry: %v", err)
	}
	if entry.ID == "" {
		t.Error("Feedback entry is missing an ID")
	}

	listReq := httptest.NewRequest(http.MethodGet, "/feedback", nil)
	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, listReq)

	if listRec.Code != http.StatusOK {
		t.Fatalf("Feedback list returned %d, want %d", listRec.Code, http.StatusOK)
	}

	var listing struct {
		Feedback []types.Feedback `json:"feedback"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Failed to decode feedback list: %v", err)
	}
	if listing.Count != 1 || len(listing.Feedback) != 1 {
		t.Errorf("Expected one feedback entry, got count=%d len=%d", listing.Count, len(listing.Feedback))
	}
}

func TestFeedbackValidation(t *testing.T) {
	srv, om, _ := newTestServer(t)
	mux := srv.setupRoutes(om)

	missingMessage := postJSON(t, mux, "/feedback", FeedbackRequest{Name: "Sam", Rating: 4})
	if missingMessage.Code != http.StatusBadRequest {
		t.Errorf("Feedback without message returned %d, want %d", missingMessage.Code, http.StatusBadRequest)
	}

	badRating := postJSON(t, mux, "/feedback", FeedbackRequest{Message: "hi", Rating: 6})
	if badRating.Code != http.StatusBadRequest {
		t.Errorf("Feedback with rating 6 returned %d, want %d", badRating.Code, http.StatusBadRequest)
	}
}

func TestTemplatesList(t *testing.T) {
	srv, om, _ := newTestServer(t)
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Templates list returned %d, want %d", rec.Code, http.StatusOK)
	}

	var listing struct {
		Templates []string `json:"templates"`
		Default   string   `json:"default"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Failed to decode templates list: %v", err)
	}
	if len(listing.Templates) != 7 {
		t.Errorf("Expected 7 templates, got %d", len(listing.Templates))
	}
	if listing.Default != "minimal" {
		t.Errorf("Unexpected default template: %q", listing.Default)
	}
}

func TestTemplatePreview(t *testing.T) {
	srv, om, records := newTestServer(t)
	seedUser(t, records, "jane1234", "secret12")
	mux := srv.setupRoutes(om)

	req := httptest.NewRequest(http.MethodGet, "/templates/minimal/preview?username=jane1234", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Preview returned %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Preview Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "Jane Doe") {
		t.Error("Preview output missing profile content")
	}

	unknownTemplate := httptest.NewRequest(http.MethodGet, "/templates/brutalist/preview?username=jane1234", nil)
	unknownRec := httptest.NewRecorder()
	mux.ServeHTTP(unknownRec, unknownTemplate)
	if unknownRec.Code != http.StatusNotFound {
		t.Errorf("Unknown template preview returned %d, want %d", unknownRec.Code, http.StatusNotFound)
	}

	missingUser := httptest.NewRequest(http.MethodGet, "/templates/minimal/preview", nil)
	missingRec := httptest.NewRecorder()
	mux.ServeHTTP(missingRec, missingUser)
	if missingRec.Code != http.StatusBadRequest {
		t.Errorf("Preview without username returned %d, want %d", missingRec.Code, http.StatusBadRequest)
	}
}

func multipartUpload(t *testing.T, fields map[string]string, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := io.WriteString(part, fileContent); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestUploadValidation(t *testing.T) {
	srv, om, _ := newTestServer(t)
	mux := srv.setupRoutes(om)

	// Not multipart at all
	plain := httptest.NewRequest(http.MethodPost, "/resumes", strings.NewReader("{}"))
	plain.Header.Set("Content-Type", "application/json")
	plainRec := httptest.NewRecorder()
	mux.ServeHTTP(plainRec, plain)
	if plainRec.Code != http.StatusBadRequest {
		t.Errorf("Non-multipart upload returned %d, want %d", plainRec.Code, http.StatusBadRequest)
	}

	// Missing file field
	body, contentType := multipartUpload(t, map[string]string{"target_role": "Backend Engineer"}, "", "")
	noFile := httptest.NewRequest(http.MethodPost, "/resumes", body)
	noFile.Header.Set("Content-Type", contentType)
	noFileRec := httptest.NewRecorder()
	mux.ServeHTTP(noFileRec, noFile)
	if noFileRec.Code != http.StatusBadRequest {
		t.Errorf("Upload without file returned %d, want %d", noFileRec.Code, http.StatusBadRequest)
	}
}

func TestUploadTargetRoleOptional(t *testing.T) {
	srv, om, records := newTestServer(t)
	mux := srv.setupRoutes(om)

	// The target_role field may be absent; the record then carries an
	// empty role.
	body, contentType := multipartUpload(t, nil, "resume.txt", "some resume text")
	req := httptest.NewRequest(http.MethodPost, "/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Upload without target_role returned %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var response UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode upload response: %v", err)
	}
	if response.Credentials == nil {
		t.Fatal("Upload response missing generated credentials")
	}

	stored, err := records.GetUser(context.Background(), response.Credentials.Username)
	if err != nil {
		t.Fatalf("Stored record not found: %v", err)
	}
	if stored.TargetRole != "" {
		t.Errorf("Expected empty target role, got %q", stored.TargetRole)
	}
}

func TestUploadTextResume(t *testing.T) {
	srv, om, _ := newTestServer(t)
	mux := srv.setupRoutes(om)

	body, contentType := multipartUpload(t, map[string]string{
		"target_role": "Backend Engineer",
		"template":    "glass",
	}, "resume.txt", "Jane Doe\nBackend engineer with ten years of Go experience.")

	req := httptest.NewRequest(http.MethodPost, "/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Upload returned %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var response UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode upload response: %v", err)
	}

	if !response.Success {
		t.Error("Upload response not marked successful")
	}
	if !response.NewUser {
		t.Error("First upload should create a new user")
	}
	if response.Credentials == nil {
		t.Fatal("Upload response missing generated credentials")
	}
	if len(response.Credentials.Username) != 8 || len(response.Credentials.Password) != 8 {
		t.Errorf("Expected 8-character credentials, got %q / %q",
			response.Credentials.Username, response.Credentials.Password)
	}
	// The in-memory fallback store never counts as a remote save.
	if response.StoreSaved {
		t.Error("Upload against the in-memory store must report firebase_saved=false")
	}
	if !strings.Contains(rec.Body.String(), `"firebase_saved"`) {
		t.Error("Upload response must carry the firebase_saved key")
	}
	if response.Data.PersonalInfo.Name != "Jane Doe" {
		t.Errorf("Unexpected normalized name: %q", response.Data.PersonalInfo.Name)
	}

	// The upload result should be retrievable through the lookup endpoint.
	lookup := httptest.NewRequest(http.MethodGet, "/users/"+response.Credentials.Username, nil)
	lookupRec := httptest.NewRecorder()
	mux.ServeHTTP(lookupRec, lookup)
	if lookupRec.Code != http.StatusOK {
		t.Errorf("Lookup of uploaded user returned %d, want %d", lookupRec.Code, http.StatusOK)
	}
}
