package cli

import (
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/extract"
	"resumeforge/internal/ingest"
	"resumeforge/internal/store"
)

// buildIngestService wires the upload pipeline from configuration. The
// same wiring backs both the serve command and the one-shot ingest
// command.
func buildIngestService(cfg *config.Config, logger *errors.Logger) (*ingest.Service, error) {
	normalizeCfg := cfg.GetNormalizeConfig()
	normalizeSvc, err := ai.NewService(&normalizeCfg, "normalize", logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create normalize service: %w", err)
	}

	// The extract provider is only needed when PDFs go through the
	// Files API; local extraction parses them in process.
	var extractProvider ai.AIProvider
	if cfg.Extract.Mode != extract.ModeLocal {
		extractCfg := cfg.GetExtractConfig()
		extractSvc, err := ai.NewService(&extractCfg, "extract", logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create extract service: %w", err)
		}
		extractProvider = extractSvc.Provider
	}
	extractor := extract.NewService(&cfg.Extract, extractProvider, logger)

	var records store.RecordStore
	remote := false
	if cfg.Store.Enabled {
		records = store.NewFirebaseStore(&cfg.Store, logger)
		remote = true
	} else {
		logger.Warn("Remote store disabled, user records are kept in memory only")
		records = store.NewMemoryStore()
	}

	var backup *store.Backup
	if cfg.Store.BackupPath != "" {
		backup = store.NewBackup(cfg.Store.BackupPath, logger)
	}

	return ingest.NewService(extractor, normalizeSvc.Provider, records, backup, remote, logger), nil
}
