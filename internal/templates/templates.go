package templates

import (
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"time"

	forgeErrors "resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// DefaultName is the template applied when a user selects none.
const DefaultName = "minimal"

// names lists every available template in presentation order.
var names = []string{
	"minimal",
	"glass",
	"luxury",
	"timeline",
	"infographic",
	"polished",
	"geometric",
}

// RenderContext is the data every template renders from.
type RenderContext struct {
	User            types.SanitizedUser
	YearsExperience int
}

// Names returns the available template names in presentation order
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// IsValid reports whether name refers to a known template
func IsValid(name string) bool {
	_, ok := registry[name]
	return ok
}

// Normalize maps arbitrary input to a valid template name, defaulting
// to the minimal template.
func Normalize(name string) string {
	if IsValid(name) {
		return name
	}
	return DefaultName
}

// Render produces the HTML presentation of a user profile
func Render(name string, user types.SanitizedUser) (string, error) {
	tmpl, ok := registry[name]
	if !ok {
		return "", forgeErrors.NewValidationError(forgeErrors.ErrCodeInvalidRequest,
			fmt.Sprintf("Unknown template: %s", name), nil)
	}

	ctx := RenderContext{
		User:            user,
		YearsExperience: YearsOfExperience(user.Resume.Experience),
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, ctx); err != nil {
		return "", forgeErrors.NewInternalError("TEMPLATE_RENDER_FAILED",
			fmt.Sprintf("Failed to render template %s", name), err)
	}
	return sb.String(), nil
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// presentPattern matches the open-ended markers resumes use for a
// current position.
var presentPattern = regexp.MustCompile(`(?i)\b(present|current|now)\b`)

// YearsOfExperience derives a total experience span from the period
// strings of the experience entries. Periods are free text, so the
// derivation is deliberately coarse: earliest year to latest year, with
// "present" counting as the current year.
func YearsOfExperience(entries []types.ExperienceEntry) int {
	if len(entries) == 0 {
		return 0
	}

	currentYear := time.Now().Year()
	minYear, maxYear := 0, 0

	for _, entry := range entries {
		for _, match := range yearPattern.FindAllString(entry.Period, -1) {
			year, err := strconv.Atoi(match)
			if err != nil || year > currentYear {
				continue
			}
			if minYear == 0 || year < minYear {
				minYear = year
			}
			if year > maxYear {
				maxYear = year
			}
		}
		if presentPattern.MatchString(entry.Period) {
			maxYear = currentYear
		}
	}

	if minYear == 0 {
		return 0
	}
	return maxYear - minYear
}

// funcMap holds helpers shared by all templates
var funcMap = template.FuncMap{
	"join": strings.Join,
}

// registry maps template names to their parsed templates
var registry = map[string]*template.Template{}

func init() {
	sources := map[string]string{
		"minimal":     minimalHTML,
		"glass":       glassHTML,
		"luxury":      luxuryHTML,
		"timeline":    timelineHTML,
		"infographic": infographicHTML,
		"polished":    polishedHTML,
		"geometric":   geometricHTML,
	}
	for name, src := range sources {
		registry[name] = template.Must(template.New(name).Funcs(funcMap).Parse(src))
	}
}
