package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// Backup mirrors every stored record into a local JSON file so ingested
// resumes survive a remote store outage. Writes go through a temp file
// and rename, so a crash never leaves a truncated backup behind.
type Backup struct {
	mu     sync.Mutex
	path   string
	logger *forgeErrors.Logger
}

// NewBackup creates a backup writer targeting path
func NewBackup(path string, logger *forgeErrors.Logger) *Backup {
	return &Backup{
		path:   path,
		logger: logger,
	}
}

// Save merges the record into the backup file under username
func (b *Backup) Save(username string, record types.UserRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.load()
	if err != nil {
		return err
	}

	records[username] = record

	if err := b.write(records); err != nil {
		return err
	}

	b.logger.Debug("Backed up user record",
		"username", username,
		"path", b.path,
		"total_records", len(records))

	return nil
}

// Load returns the backed-up record for username, or a not-found error
func (b *Backup) Load(username string) (*types.UserRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.load()
	if err != nil {
		return nil, err
	}

	record, ok := records[username]
	if !ok {
		return nil, notFound(username)
	}
	return &record, nil
}

// load reads the current backup file, tolerating a missing file
func (b *Backup) load() (map[string]types.UserRecord, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]types.UserRecord), nil
		}
		return nil, forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Failed to read backup file", err)
	}

	records := make(map[string]types.UserRecord)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, forgeErrors.NewIOError(forgeErrors.ErrCodeInvalidFormat,
				"Backup file is corrupted", err).WithContext("path", b.path)
		}
	}
	return records, nil
}

// write atomically replaces the backup file
func (b *Backup) write(records map[string]types.UserRecord) error {
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Failed to create backup directory", err)
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return forgeErrors.NewIOError(forgeErrors.ErrCodeInvalidFormat,
			"Failed to encode backup", err)
	}

	tmp, err := os.CreateTemp(dir, ".backup-*.json")
	if err != nil {
		return forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Failed to create temp backup file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Failed to write backup", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Failed to close backup file", err)
	}

	if err := os.Rename(tmpName, b.path); err != nil {
		_ = os.Remove(tmpName)
		return forgeErrors.NewIOError(forgeErrors.ErrCodeFileNotReadable,
			"Failed to replace backup file", err)
	}

	return nil
}
