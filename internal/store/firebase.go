package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"resumeforge/internal/config"
	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/types"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// FirebaseStore talks to a Firebase Realtime Database over its REST
// surface. Records live under Users/{username}. A GET on a missing key
// returns the literal body "null".
type FirebaseStore struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     *forgeErrors.Logger
}

// Ensure FirebaseStore implements RecordStore
var _ RecordStore = (*FirebaseStore)(nil)

// NewFirebaseStore creates a store client from the store configuration
func NewFirebaseStore(cfg *config.StoreConfig, logger *forgeErrors.Logger) *FirebaseStore {
	return &FirebaseStore{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// recordURL builds the REST endpoint for a username
func (s *FirebaseStore) recordURL(username string) string {
	endpoint := fmt.Sprintf("%s/Users/%s.json", s.baseURL, url.PathEscape(username))
	if s.authToken != "" {
		endpoint += "?auth=" + url.QueryEscape(s.authToken)
	}
	return endpoint
}

// GetUser fetches the record stored at Users/{username}
func (s *FirebaseStore) GetUser(ctx context.Context, username string) (*types.UserRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.recordURL(username), nil)
	if err != nil {
		return nil, forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			"Failed to build store request", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			"Store request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.logger.Warn("Failed to close store response body", "error", closeErr.Error())
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			"Failed to read store response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			fmt.Sprintf("Store returned status %d", resp.StatusCode), nil).
			WithContext("username", username)
	}

	// Missing keys come back as the literal "null", not as a 404.
	if strings.TrimSpace(string(body)) == "null" {
		return nil, notFound(username)
	}

	var record types.UserRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			"Failed to decode stored record", err).WithContext("username", username)
	}

	return &record, nil
}

// PutUser writes the record at Users/{username}, replacing any previous value
func (s *FirebaseStore) PutUser(ctx context.Context, username string, record types.UserRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			"Failed to encode record", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.recordURL(username), bytes.NewReader(payload))
	if err != nil {
		return forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			"Failed to build store request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			"Store request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			s.logger.Warn("Failed to close store response body", "error", closeErr.Error())
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return forgeErrors.NewStoreError(forgeErrors.ErrCodeStoreFailed,
			fmt.Sprintf("Store returned status %d on write", resp.StatusCode), nil).
			WithContext("username", username)
	}

	s.logger.Debug("Stored user record",
		"username", username,
		"bytes", len(payload))

	return nil
}
