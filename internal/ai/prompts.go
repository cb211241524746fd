package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	ExtractText     string
	NormalizeResume string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	ExtractText     string
	NormalizeResume string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	ExtractText: `You are a precise document transcription engine. Your core principles are:

- Transcribe text exactly as it appears in the document
- NEVER summarize, paraphrase, or omit content
- Preserve the reading order of the document
- Keep section headings, bullet points, dates and contact details intact

You handle resumes and CVs in any layout, including multi-column designs,
tables and scanned pages.`,

	NormalizeResume: `You are an expert resume writer and career data analyst with a strict commitment to honesty and accuracy. Your core principles are:

- NEVER invent, exaggerate, or misattribute any skills or experiences
- Every piece of information must be directly traceable to the source text
- Select content for relevance to the target role without fabricating it
- Always respond with valid JSON matching the requested structure exactly`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	ExtractText: `Extract all readable text from the attached document.

Return every piece of text content in reading order, including headings,
bullet points, dates, links and contact details. Do not summarize and do
not add commentary.`,

	NormalizeResume: `Convert the following resume text into a structured profile for a candidate targeting the role of "%s". The profile will be presented with the "%s" template, so prefer content that reads well in that layout.

The output must be a JSON object with exactly this structure:

{
  "personalInfo": {
    "name": "",
    "role": "",
    "email": "",
    "phone": "",
    "github": "",
    "linkedin": "",
    "website": "",
    "photo": "/placeholder.svg?height=400&width=400"
  },
  "education": [
    { "degree": "", "institution": "", "year": "", "description": "" }
  ],
  "experience": [
    { "title": "", "company": "", "period": "", "description": "", "achievements": [""] }
  ],
  "projects": [
    { "name": "", "description": "", "technologies": [""], "link": "" }
  ],
  "skills": {
    "technical": [""],
    "soft": [""]
  }
}

Rules:
- Use only information present in the resume text. Leave fields empty when the resume does not provide them.
- Set "role" to the target role.
- Keep only the 3 projects and 3 experiences most relevant to the target role.
- If the resume text is empty or contains no resume content, return an empty JSON object.

Resume text:

%s`,
}
