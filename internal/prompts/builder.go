package prompts

// InputCeiling is the maximum number of characters of resume or job text
// interpolated into any prompt. Upstream resolution already truncates job
// descriptions; the ceiling is re-applied here so an oversized input can never
// reach the model regardless of where it entered the pipeline.
const InputCeiling = 15000

const promptFile = "tailoring.json"

// BuildTailorPrompt assembles the resume tailoring prompt. Pure function, no I/O.
func BuildTailorPrompt(resumeText, jobText string) string {
	template := MustGet(promptFile, "tailor-resume")
	return Format(template, map[string]string{
		"ResumeText": truncateInput(resumeText),
		"JobText":    truncateInput(jobText),
	})
}

// BuildCoverLetterPrompt assembles the cover letter prompt. Pure function, no I/O.
func BuildCoverLetterPrompt(resumeText, jobText string) string {
	template := MustGet(promptFile, "cover-letter")
	return Format(template, map[string]string{
		"ResumeText": truncateInput(resumeText),
		"JobText":    truncateInput(jobText),
	})
}

func truncateInput(text string) string {
	if len(text) > InputCeiling {
		return text[:InputCeiling]
	}
	return text
}
