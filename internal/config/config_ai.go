package config

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetExtractConfig returns the AI configuration for extract operations with fallback to global config
func (c *Config) GetExtractConfig() OperationAIConfig {
	config := c.AI.Extract

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply extract-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ExtractText == "" {
		config.CustomPrompts.SystemPrompts.ExtractText = c.AI.CustomPrompts.SystemPrompts.ExtractText
	}
	if config.CustomPrompts.UserPrompts.ExtractText == "" {
		config.CustomPrompts.UserPrompts.ExtractText = c.AI.CustomPrompts.UserPrompts.ExtractText
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ExtractTextFile == "" {
		config.CustomPrompts.SystemPrompts.ExtractTextFile = c.AI.CustomPrompts.SystemPrompts.ExtractTextFile
	}
	if config.CustomPrompts.UserPrompts.ExtractTextFile == "" {
		config.CustomPrompts.UserPrompts.ExtractTextFile = c.AI.CustomPrompts.UserPrompts.ExtractTextFile
	}

	return config
}

// GetNormalizeConfig returns the AI configuration for normalize operations with fallback to global config
func (c *Config) GetNormalizeConfig() OperationAIConfig {
	config := c.AI.Normalize

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply normalize-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.NormalizeResume == "" {
		config.CustomPrompts.SystemPrompts.NormalizeResume = c.AI.CustomPrompts.SystemPrompts.NormalizeResume
	}
	if config.CustomPrompts.UserPrompts.NormalizeResume == "" {
		config.CustomPrompts.UserPrompts.NormalizeResume = c.AI.CustomPrompts.UserPrompts.NormalizeResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.NormalizeResumeFile == "" {
		config.CustomPrompts.SystemPrompts.NormalizeResumeFile = c.AI.CustomPrompts.SystemPrompts.NormalizeResumeFile
	}
	if config.CustomPrompts.UserPrompts.NormalizeResumeFile == "" {
		config.CustomPrompts.UserPrompts.NormalizeResumeFile = c.AI.CustomPrompts.UserPrompts.NormalizeResumeFile
	}

	return config
}

// GetLoadedExtractPrompts returns a copy of the loaded prompts for the extract operation
func (c *Config) GetLoadedExtractPrompts() OperationLoadedPrompts {
	return loadedPrompts.Extract
}

// GetLoadedNormalizePrompts returns a copy of the loaded prompts for the normalize operation
func (c *Config) GetLoadedNormalizePrompts() OperationLoadedPrompts {
	return loadedPrompts.Normalize
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}
