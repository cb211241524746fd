package cli

import (
	"fmt"
	"path/filepath"

	"resumeforge/internal/common"
	"resumeforge/internal/ingest"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [resume-file]",
	Short: "Run the full upload pipeline for a resume document",
	Long: `Process a resume document the same way the HTTP API does: extract its
text, normalize it into a structured profile for the target role, issue
credentials, and persist the record. PDF, .txt and .md files are supported.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if ingestConfig.OutputFormat == "" {
			ingestConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(ingestConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runIngest,
}

var (
	ingestConfig   common.CommandConfig
	ingestRole     string
	ingestUsername string
	ingestPricing  string
	ingestTemplate string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	ingestCmd.Flags().StringVar(&ingestConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	ingestCmd.Flags().StringVar(&ingestRole, "role", "", "Target role the resume should be shaped for (required)")
	ingestCmd.Flags().StringVar(&ingestUsername, "username", "", "Existing username to re-ingest for (keeps the current password)")
	ingestCmd.Flags().StringVar(&ingestPricing, "pricing", "", "Pricing tier: free, basic, or premium")
	ingestCmd.Flags().StringVar(&ingestTemplate, "template", "", "Presentation template name")
	_ = ingestCmd.MarkFlagRequired("role")

	// Add completion for format flag
	_ = ingestCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	ingestService, err := buildIngestService(cfg, logger)
	if err != nil {
		return err
	}

	filePath := args[0]
	logger.Info("Starting resume ingestion",
		"file", filePath,
		"target_role", ingestRole,
		"output_format", ingestConfig.OutputFormat)

	result, usage, err := ingestService.Ingest(cmd.Context(), ingest.Request{
		FilePath:     filePath,
		OriginalName: filepath.Base(filePath),
		Username:     ingestUsername,
		TargetRole:   ingestRole,
		Pricing:      ingestPricing,
		Template:     ingestTemplate,
	})
	if err != nil {
		return fmt.Errorf("failed to ingest resume: %w", err)
	}

	if usage != nil {
		if usage.Extract != nil {
			logger.Info("AI token usage", "stage", "extract",
				"input_tokens", usage.Extract.InputTokens,
				"output_tokens", usage.Extract.OutputTokens,
				"total_tokens", usage.Extract.TotalTokens)
		}
		if usage.Normalize != nil {
			logger.Info("AI token usage", "stage", "normalize",
				"input_tokens", usage.Normalize.InputTokens,
				"output_tokens", usage.Normalize.OutputTokens,
				"total_tokens", usage.Normalize.TotalTokens)
		}
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(result, ingestConfig); err != nil {
		return err
	}

	logger.Info("Resume ingestion completed successfully",
		"new_user", result.NewUser,
		"store_saved", result.StoreSaved)
	return nil
}
