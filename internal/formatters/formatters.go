package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumeforge/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeData", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeData", &ResumeMarkdownFormatter{})
	registry.RegisterFormatter("text", "IngestResult", &IngestTextFormatter{})
	registry.RegisterFormatter("markdown", "IngestResult", &IngestMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeData:
		return "ResumeData"
	case types.IngestResult:
		return "IngestResult"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ResumeTextFormatter handles text formatting for structured resumes
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeData)
	if !ok {
		return "", fmt.Errorf("expected ResumeData, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== PERSONAL INFO ===\n")
	output.WriteString(fmt.Sprintf("Name:  %s\n", result.PersonalInfo.Name))
	output.WriteString(fmt.Sprintf("Role:  %s\n", result.PersonalInfo.Role))
	output.WriteString(fmt.Sprintf("Email: %s\n", result.PersonalInfo.Email))
	if result.PersonalInfo.Phone != "" {
		output.WriteString(fmt.Sprintf("Phone: %s\n", result.PersonalInfo.Phone))
	}
	if result.PersonalInfo.GitHub != "" {
		output.WriteString(fmt.Sprintf("GitHub: %s\n", result.PersonalInfo.GitHub))
	}
	if result.PersonalInfo.LinkedIn != "" {
		output.WriteString(fmt.Sprintf("LinkedIn: %s\n", result.PersonalInfo.LinkedIn))
	}
	output.WriteString("\n")

	if len(result.Education) > 0 {
		output.WriteString("=== EDUCATION ===\n")
		for _, entry := range result.Education {
			output.WriteString(fmt.Sprintf("%s, %s (%s)\n", entry.Degree, entry.Institution, entry.Year))
			if entry.Description != "" {
				output.WriteString(fmt.Sprintf("  %s\n", entry.Description))
			}
		}
		output.WriteString("\n")
	}

	if len(result.Experience) > 0 {
		output.WriteString("=== EXPERIENCE ===\n")
		for _, entry := range result.Experience {
			output.WriteString(fmt.Sprintf("%s at %s (%s)\n", entry.Title, entry.Company, entry.Period))
			if entry.Description != "" {
				output.WriteString(fmt.Sprintf("  %s\n", entry.Description))
			}
			for _, achievement := range entry.Achievements {
				output.WriteString(fmt.Sprintf("  - %s\n", achievement))
			}
		}
		output.WriteString("\n")
	}

	if len(result.Projects) > 0 {
		output.WriteString("=== PROJECTS ===\n")
		for _, project := range result.Projects {
			output.WriteString(fmt.Sprintf("%s\n", project.Name))
			if project.Description != "" {
				output.WriteString(fmt.Sprintf("  %s\n", project.Description))
			}
			if len(project.Technologies) > 0 {
				output.WriteString(fmt.Sprintf("  Technologies: %s\n", strings.Join(project.Technologies, ", ")))
			}
			if project.Link != "" {
				output.WriteString(fmt.Sprintf("  Link: %s\n", project.Link))
			}
		}
		output.WriteString("\n")
	}

	output.WriteString("=== SKILLS ===\n")
	output.WriteString(fmt.Sprintf("Technical: %s\n", strings.Join(result.Skills.Technical, ", ")))
	output.WriteString(fmt.Sprintf("Soft:      %s\n", strings.Join(result.Skills.Soft, ", ")))

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeData"
}

// ResumeMarkdownFormatter handles markdown formatting for structured resumes
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeData)
	if !ok {
		return "", fmt.Errorf("expected ResumeData, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# %s\n\n", result.PersonalInfo.Name))
	output.WriteString(fmt.Sprintf("**%s**\n\n", result.PersonalInfo.Role))
	output.WriteString(fmt.Sprintf("- Email: %s\n", result.PersonalInfo.Email))
	if result.PersonalInfo.Phone != "" {
		output.WriteString(fmt.Sprintf("- Phone: %s\n", result.PersonalInfo.Phone))
	}
	if result.PersonalInfo.GitHub != "" {
		output.WriteString(fmt.Sprintf("- GitHub: %s\n", result.PersonalInfo.GitHub))
	}
	if result.PersonalInfo.LinkedIn != "" {
		output.WriteString(fmt.Sprintf("- LinkedIn: %s\n", result.PersonalInfo.LinkedIn))
	}
	output.WriteString("\n")

	if len(result.Education) > 0 {
		output.WriteString("## Education\n\n")
		for _, entry := range result.Education {
			output.WriteString(fmt.Sprintf("### %s\n\n", entry.Degree))
			output.WriteString(fmt.Sprintf("%s (%s)\n\n", entry.Institution, entry.Year))
			if entry.Description != "" {
				output.WriteString(entry.Description)
				output.WriteString("\n\n")
			}
		}
	}

	if len(result.Experience) > 0 {
		output.WriteString("## Experience\n\n")
		for _, entry := range result.Experience {
			output.WriteString(fmt.Sprintf("### %s, %s\n\n", entry.Title, entry.Company))
			output.WriteString(fmt.Sprintf("*%s*\n\n", entry.Period))
			if entry.Description != "" {
				output.WriteString(entry.Description)
				output.WriteString("\n\n")
			}
			for _, achievement := range entry.Achievements {
				output.WriteString(fmt.Sprintf("- %s\n", achievement))
			}
			if len(entry.Achievements) > 0 {
				output.WriteString("\n")
			}
		}
	}

	if len(result.Projects) > 0 {
		output.WriteString("## Projects\n\n")
		for _, project := range result.Projects {
			output.WriteString(fmt.Sprintf("### %s\n\n", project.Name))
			if project.Description != "" {
				output.WriteString(project.Description)
				output.WriteString("\n\n")
			}
			if len(project.Technologies) > 0 {
				output.WriteString(fmt.Sprintf("**Technologies:** %s\n\n", strings.Join(project.Technologies, ", ")))
			}
			if project.Link != "" {
				output.WriteString(fmt.Sprintf("[%s](%s)\n\n", project.Link, project.Link))
			}
		}
	}

	output.WriteString("## Skills\n\n")
	output.WriteString(fmt.Sprintf("**Technical:** %s\n\n", strings.Join(result.Skills.Technical, ", ")))
	output.WriteString(fmt.Sprintf("**Soft:** %s\n", strings.Join(result.Skills.Soft, ", ")))

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeData"
}

// IngestTextFormatter handles text formatting for full ingest results
type IngestTextFormatter struct{}

func (itf *IngestTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.IngestResult)
	if !ok {
		return "", fmt.Errorf("expected IngestResult, got %T", data)
	}

	var output strings.Builder

	resume, err := (&ResumeTextFormatter{}).Format(result.Data)
	if err != nil {
		return "", err
	}
	output.WriteString(resume)
	output.WriteString("\n")

	if result.Credentials != nil {
		output.WriteString("=== CREDENTIALS ===\n")
		output.WriteString(fmt.Sprintf("Username: %s\n", result.Credentials.Username))
		output.WriteString(fmt.Sprintf("Password: %s\n", result.Credentials.Password))
		output.WriteString("\n")
	}

	output.WriteString(fmt.Sprintf("Stored remotely: %t\n", result.StoreSaved))
	output.WriteString(fmt.Sprintf("New user: %t\n", result.NewUser))

	return output.String(), nil
}

func (itf *IngestTextFormatter) SupportedType() string {
	return "IngestResult"
}

// IngestMarkdownFormatter handles markdown formatting for full ingest results
type IngestMarkdownFormatter struct{}

func (imf *IngestMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.IngestResult)
	if !ok {
		return "", fmt.Errorf("expected IngestResult, got %T", data)
	}

	var output strings.Builder

	resume, err := (&ResumeMarkdownFormatter{}).Format(result.Data)
	if err != nil {
		return "", err
	}
	output.WriteString(resume)
	output.WriteString("\n")

	if result.Credentials != nil {
		output.WriteString("## Credentials\n\n")
		output.WriteString(fmt.Sprintf("- **Username:** %s\n", result.Credentials.Username))
		output.WriteString(fmt.Sprintf("- **Password:** %s\n", result.Credentials.Password))
		output.WriteString("\n")
	}

	output.WriteString(fmt.Sprintf("**Stored remotely:** %t\n\n", result.StoreSaved))
	output.WriteString(fmt.Sprintf("**New user:** %t\n", result.NewUser))

	return output.String(), nil
}

func (imf *IngestMarkdownFormatter) SupportedType() string {
	return "IngestResult"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
