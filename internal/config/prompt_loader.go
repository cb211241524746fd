package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GetLoadedPrompts returns the loaded prompt content in a thread-safe way
func GetLoadedPrompts() *AllLoadedPrompts {
	return &loadedPrompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.Extract.CustomPrompts.SystemPrompts, &loadedPrompts.Extract.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load extract system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Extract.CustomPrompts.UserPrompts, &loadedPrompts.Extract.UserPrompts); err != nil {
		return fmt.Errorf("failed to load extract user prompts: %w", err)
	}

	if err := c.loadSystemPromptsFromFiles(&c.AI.Normalize.CustomPrompts.SystemPrompts, &loadedPrompts.Normalize.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load normalize system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.Normalize.CustomPrompts.UserPrompts, &loadedPrompts.Normalize.UserPrompts); err != nil {
		return fmt.Errorf("failed to load normalize user prompts: %w", err)
	}

	// Log summary of prompt sources after loading
	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	if prompts.ExtractTextFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractTextFile, "system", "extractText")
		if err != nil {
			return err
		}
		target.ExtractText = content
	}

	if prompts.NormalizeResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.NormalizeResumeFile, "system", "normalizeResume")
		if err != nil {
			return err
		}
		target.NormalizeResume = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	if prompts.ExtractTextFile != "" {
		content, err := c.loadPromptFromFile(prompts.ExtractTextFile, "user", "extractText")
		if err != nil {
			return err
		}
		target.ExtractText = content
	}

	if prompts.NormalizeResumeFile != "" {
		content, err := c.loadPromptFromFile(prompts.NormalizeResumeFile, "user", "normalizeResume")
		if err != nil {
			return err
		}
		target.NormalizeResume = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	// Helper function to validate a file path
	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	// Validate global prompt files
	validateFile(c.AI.CustomPrompts.SystemPrompts.ExtractTextFile, "system", "extractText")
	validateFile(c.AI.CustomPrompts.SystemPrompts.NormalizeResumeFile, "system", "normalizeResume")
	validateFile(c.AI.CustomPrompts.UserPrompts.ExtractTextFile, "user", "extractText")
	validateFile(c.AI.CustomPrompts.UserPrompts.NormalizeResumeFile, "user", "normalizeResume")

	// Validate operation-specific prompt files
	validateFile(c.AI.Extract.CustomPrompts.SystemPrompts.ExtractTextFile, "extract system", "extractText")
	validateFile(c.AI.Extract.CustomPrompts.UserPrompts.ExtractTextFile, "extract user", "extractText")
	validateFile(c.AI.Normalize.CustomPrompts.SystemPrompts.NormalizeResumeFile, "normalize system", "normalizeResume")
	validateFile(c.AI.Normalize.CustomPrompts.UserPrompts.NormalizeResumeFile, "normalize user", "normalizeResume")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptChecks := []struct {
		content string
		message string
	}{
		{loadedPrompts.Global.SystemPrompts.ExtractText, "[CONFIG] Global system extract prompt: loaded from config/file"},
		{loadedPrompts.Global.SystemPrompts.NormalizeResume, "[CONFIG] Global system normalize prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.ExtractText, "[CONFIG] Global user extract prompt: loaded from config/file"},
		{loadedPrompts.Global.UserPrompts.NormalizeResume, "[CONFIG] Global user normalize prompt: loaded from config/file"},
		{loadedPrompts.Extract.SystemPrompts.ExtractText, "[CONFIG] Extract-specific system prompt: loaded from config/file"},
		{loadedPrompts.Extract.UserPrompts.ExtractText, "[CONFIG] Extract-specific user prompt: loaded from config/file"},
		{loadedPrompts.Normalize.SystemPrompts.NormalizeResume, "[CONFIG] Normalize-specific system prompt: loaded from config/file"},
		{loadedPrompts.Normalize.UserPrompts.NormalizeResume, "[CONFIG] Normalize-specific user prompt: loaded from config/file"},
	}

	promptCount := 0
	for _, check := range promptChecks {
		if check.content != "" {
			log.Println(check.message)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
