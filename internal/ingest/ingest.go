package ingest

import (
	"context"
	"crypto/subtle"

	"resumeforge/internal/ai"
	"resumeforge/internal/credentials"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/store"
	"resumeforge/internal/templates"
	"resumeforge/internal/types"
)

// Request describes one resume upload.
type Request struct {
	FilePath     string
	OriginalName string
	// Username is set when re-ingesting for an existing user. The
	// existing password is kept and no new credentials are issued.
	Username   string
	TargetRole string
	Pricing    string
	Template   string
}

// Usage aggregates token consumption across the pipeline stages.
type Usage struct {
	Extract   *ai.TokenUsage
	Normalize *ai.TokenUsage
}

// Service runs the upload pipeline: extract text, normalize it into a
// structured resume, issue or reuse credentials, and persist the record.
type Service struct {
	extractor *extract.Service
	provider  ai.AIProvider
	records   store.RecordStore
	backup    *store.Backup
	remote    bool
	logger    *forgeErrors.Logger
}

// NewService wires the pipeline stages together. records is the remote
// store when one is configured, otherwise an in-memory fallback; remote
// tells the service which of the two it got, since only remote writes
// count as "saved" in results.
func NewService(extractor *extract.Service, provider ai.AIProvider, records store.RecordStore, backup *store.Backup, remote bool, logger *forgeErrors.Logger) *Service {
	return &Service{
		extractor: extractor,
		provider:  provider,
		records:   records,
		backup:    backup,
		remote:    remote,
		logger:    logger,
	}
}

// Ingest runs the full pipeline for one upload
func (s *Service) Ingest(ctx context.Context, req Request) (types.IngestResult, *Usage, error) {
	usage := &Usage{}

	extracted, err := s.extractor.Text(ctx, req.FilePath, req.OriginalName)
	if err != nil {
		return types.IngestResult{}, usage, err
	}
	usage.Extract = extracted.TokenUsage

	template := templates.Normalize(req.Template)

	// An empty document never reaches the normalization model; the
	// result is an empty resume with defaults applied.
	var data types.ResumeData
	if extracted.Text != "" {
		data, usage.Normalize, err = s.provider.NormalizeResume(ctx, types.NormalizeResumeInput{
			ResumeText: extracted.Text,
			TargetRole: req.TargetRole,
			Template:   template,
		})
		if err != nil {
			return types.IngestResult{}, usage, err
		}
	} else {
		s.logger.Warn("Upload contained no extractable text, skipping normalization",
			"file", req.OriginalName)
		data.ApplyDefaults()
	}

	record := types.UserRecord{
		TargetRole: req.TargetRole,
		Pricing:    types.NormalizePricing(req.Pricing),
		Template:   template,
		Resume:     data,
	}

	var creds *types.Credentials
	username := req.Username
	newUser := username == ""

	if newUser {
		generated := credentials.Generate()
		creds = &generated
		username = generated.Username
		record.Password = generated.Password
	} else {
		existing, err := s.records.GetUser(ctx, username)
		if err != nil {
			// A not-found here surfaces as-is so the HTTP layer can
			// answer 404 for an unknown username.
			return types.IngestResult{}, usage, err
		}
		// Re-ingest keeps the password the user already has.
		record.Password = existing.Password
	}

	saved := s.persist(ctx, username, record)

	s.logger.Info("Resume ingested",
		"username", username,
		"new_user", newUser,
		"template", record.Template,
		"pricing", string(record.Pricing),
		"store_saved", saved)

	return types.IngestResult{
		Data:        data,
		Credentials: creds,
		StoreSaved:  saved,
		NewUser:     newUser,
	}, usage, nil
}

// persist writes the record to the store and the local backup. Both are
// best effort; an upload with a failed write still returns its data and
// credentials to the caller.
func (s *Service) persist(ctx context.Context, username string, record types.UserRecord) bool {
	saved := false

	if err := s.records.PutUser(ctx, username, record); err != nil {
		s.logger.LogError(err, "Failed to persist user record",
			"username", username)
	} else {
		saved = s.remote
	}

	if s.backup != nil {
		if err := s.backup.Save(username, record); err != nil {
			s.logger.LogError(err, "Failed to back up user record",
				"username", username)
		}
	}

	return saved
}

// Login verifies credentials and returns the sanitized profile. Unknown
// usernames and wrong passwords produce the same error, so a caller
// cannot probe which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (types.SanitizedUser, error) {
	invalid := forgeErrors.NewValidationError(forgeErrors.ErrCodeInvalidLogin,
		"Invalid username or password", nil)

	record, err := s.records.GetUser(ctx, username)
	if err != nil {
		if store.IsNotFound(err) {
			return types.SanitizedUser{}, invalid
		}
		return types.SanitizedUser{}, err
	}

	if subtle.ConstantTimeCompare([]byte(record.Password), []byte(password)) != 1 {
		return types.SanitizedUser{}, invalid
	}

	return record.Sanitize(username), nil
}

// Lookup returns the sanitized profile for username
func (s *Service) Lookup(ctx context.Context, username string) (types.SanitizedUser, error) {
	record, err := s.records.GetUser(ctx, username)
	if err != nil {
		return types.SanitizedUser{}, err
	}
	return record.Sanitize(username), nil
}
