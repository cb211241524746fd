package cli

import (
	"context"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/templates"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [resume-text-file]",
	Short: "Normalize plain resume text into a structured profile",
	Long: `Normalize already-extracted resume text into the structured profile
format using AI. The command takes one argument: the path to a plain text
file containing the resume. Useful for inspecting what the upload pipeline
produces without running extraction or persistence.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if normalizeConfig.OutputFormat == "" {
			normalizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(normalizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runNormalize,
}

var (
	normalizeConfig   common.CommandConfig
	normalizeRole     string
	normalizeTemplate string
)

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	normalizeCmd.Flags().StringVar(&normalizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	normalizeCmd.Flags().StringVar(&normalizeRole, "role", "", "Target role the profile should be shaped for (required)")
	normalizeCmd.Flags().StringVar(&normalizeTemplate, "template", "", "Presentation template the profile is destined for")
	_ = normalizeCmd.MarkFlagRequired("role")

	// Add completion for format flag
	_ = normalizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for normalize operation
	normalizeAIConfig := cfg.GetNormalizeConfig()
	aiService, err := ai.NewService(&normalizeAIConfig, "normalize", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.NormalizeResumeInput, error) {
		if len(contents) != 1 {
			return types.NormalizeResumeInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.NormalizeResumeInput{
			ResumeText: contents[0],
			TargetRole: normalizeRole,
			Template:   templates.Normalize(normalizeTemplate),
		}, nil
	}

	logDetails := func(input types.NormalizeResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume normalization",
			"resume_chars", len(input.ResumeText),
			"target_role", input.TargetRole,
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	normalizeOperation := func(ctx context.Context, input types.NormalizeResumeInput) (types.ResumeData, *ai.TokenUsage, error) {
		return aiService.Provider.NormalizeResume(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		normalizeConfig,
		args,
		createInput,
		normalizeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to normalize resume: %w", err)
	}
	logger.Info("Resume normalization completed successfully")
	return nil
}
