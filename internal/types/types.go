package types

import "time"

// PersonalInfo holds the contact block of a resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Website  string `json:"website"`
	Photo    string `json:"photo"`
}

// EducationEntry represents a single education item
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Description string `json:"description"`
}

// ExperienceEntry represents a single work experience item
type ExperienceEntry struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// ProjectEntry represents a single project item
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
}

// Skills splits skills into technical and soft groups
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// ResumeData is the normalized resume payload produced by the AI
// normalization step. All collections are non-nil after ApplyDefaults.
type ResumeData struct {
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	Education    []EducationEntry  `json:"education"`
	Experience   []ExperienceEntry `json:"experience"`
	Projects     []ProjectEntry    `json:"projects"`
	Skills       Skills            `json:"skills"`
}

// DefaultPhotoPlaceholder is used when the resume provides no photo.
const DefaultPhotoPlaceholder = "/placeholder.svg?height=400&width=400"

// ApplyDefaults fills gaps the model may leave so downstream consumers
// never see nil slices or an empty photo. Applied exactly once, at the
// normalization boundary.
func (r *ResumeData) ApplyDefaults() {
	if r.PersonalInfo.Photo == "" {
		r.PersonalInfo.Photo = DefaultPhotoPlaceholder
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
	if r.Skills.Technical == nil {
		r.Skills.Technical = []string{}
	}
	if r.Skills.Soft == nil {
		r.Skills.Soft = []string{}
	}
	for i := range r.Experience {
		if r.Experience[i].Achievements == nil {
			r.Experience[i].Achievements = []string{}
		}
	}
	for i := range r.Projects {
		if r.Projects[i].Technologies == nil {
			r.Projects[i].Technologies = []string{}
		}
	}
}

// IsEmpty reports whether the resume carries no content at all.
func (r *ResumeData) IsEmpty() bool {
	return r.PersonalInfo.Name == "" &&
		r.PersonalInfo.Email == "" &&
		len(r.Education) == 0 &&
		len(r.Experience) == 0 &&
		len(r.Projects) == 0 &&
		len(r.Skills.Technical) == 0 &&
		len(r.Skills.Soft) == 0
}

// Pricing is the plan selected at upload time.
type Pricing string

const (
	PricingFree    Pricing = "free"
	PricingBasic   Pricing = "basic"
	PricingPremium Pricing = "premium"
)

// Valid reports whether p is a known plan.
func (p Pricing) Valid() bool {
	switch p {
	case PricingFree, PricingBasic, PricingPremium:
		return true
	}
	return false
}

// NormalizePricing maps arbitrary input to a valid plan, defaulting to free.
func NormalizePricing(s string) Pricing {
	p := Pricing(s)
	if !p.Valid() {
		return PricingFree
	}
	return p
}

// UserRecord is the full stored record for a user, including the password.
// It never leaves the service as-is; see SanitizedUser.
type UserRecord struct {
	TargetRole string     `json:"targetRole"`
	Pricing    Pricing    `json:"pricing"`
	Template   string     `json:"template"`
	Password   string     `json:"password"`
	Resume     ResumeData `json:"fileData"`
}

// SanitizedUser is the outward-facing view of a record. It has no
// password field, so a password cannot leak through serialization.
type SanitizedUser struct {
	Username   string     `json:"username"`
	TargetRole string     `json:"targetRole"`
	Pricing    Pricing    `json:"pricing"`
	Template   string     `json:"template"`
	Resume     ResumeData `json:"fileData"`
}

// Sanitize strips the password from a record.
func (u UserRecord) Sanitize(username string) SanitizedUser {
	return SanitizedUser{
		Username:   username,
		TargetRole: u.TargetRole,
		Pricing:    u.Pricing,
		Template:   u.Template,
		Resume:     u.Resume,
	}
}

// Credentials are issued to a newly created user.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Feedback is a single feedback board entry.
type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExtractTextInput identifies an uploaded document to recover plain text from.
type ExtractTextInput struct {
	FilePath    string
	MIMEType    string
	DisplayName string
}

// ExtractTextOutput carries the text recovered from a document.
type ExtractTextOutput struct {
	Text string `json:"text"`
}

// NormalizeResumeInput is the raw material for structured normalization.
// Template is the presentation template the profile will be rendered
// with, so the model can weight content for that layout.
type NormalizeResumeInput struct {
	ResumeText string
	TargetRole string
	Template   string
}

// IngestResult is what the ingestion pipeline returns to its caller.
type IngestResult struct {
	Data        ResumeData   `json:"data"`
	Credentials *Credentials `json:"credentials,omitempty"`
	StoreSaved  bool         `json:"storeSaved"`
	NewUser     bool         `json:"newUser"`
}
