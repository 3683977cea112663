// Package tailoring implements the resume tailoring and cover letter
// generation flows: prompt construction, model output parsing and validation,
// and the orchestration that composes extraction, resolution, and generation.
package tailoring

import "encoding/json"

// PersonalInfo carries the candidate identity line of a tailored resume.
type PersonalInfo struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// ExperienceEntry is a single rewritten work history entry.
// Points are ordered; insertion order is display order.
type ExperienceEntry struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Duration string   `json:"duration"`
	Points   []string `json:"points"`
}

// EducationEntry is a single education record.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// Analysis holds the model's critique of the original resume against the job.
type Analysis struct {
	// AddedSkills lists only the skills the model added or newly emphasized.
	// The parser guarantees this is a subset of TailoredResume.Skills.
	AddedSkills     []string `json:"addedSkills"`
	SummaryKeywords []string `json:"summaryKeywords"`
	Critique        []string `json:"critique"`
	Improvements    []string `json:"improvements"`
}

// TailoredResume is the output contract of the tailor flow.
// Skills and the nested sequences are ordered; insertion order is display order.
type TailoredResume struct {
	PersonalInfo PersonalInfo      `json:"personalInfo"`
	Summary      string            `json:"summary"`
	Skills       []string          `json:"skills"`
	Experience   []ExperienceEntry `json:"experience"`
	Education    []EducationEntry  `json:"education"`
	// Projects are passed through without strict typing; the shape is
	// whatever the model produced.
	Projects []json.RawMessage `json:"projects"`
	Analysis Analysis          `json:"analysis"`
}

// CoverLetterBundle is the output contract of the cover letter flow.
// Length limits (~350 words, ~300 chars) are prompt intent, not hard-enforced.
type CoverLetterBundle struct {
	CoverLetter     string `json:"coverLetter"`
	LinkedInMessage string `json:"linkedinMessage"`
}
