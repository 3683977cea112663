package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTailorPrompt_InterpolatesInputs(t *testing.T) {
	prompt := BuildTailorPrompt("RESUME BODY HERE", "JOB BODY HERE")

	assert.Contains(t, prompt, "RESUME BODY HERE")
	assert.Contains(t, prompt, "JOB BODY HERE")
	assert.Contains(t, prompt, "addedSkills")
	assert.Contains(t, prompt, "3-5 distinct bullet points")
	assert.NotContains(t, prompt, "{{.ResumeText}}")
	assert.NotContains(t, prompt, "{{.JobText}}")
}

func TestBuildTailorPrompt_UnderCeilingLeftUntruncated(t *testing.T) {
	resume := strings.Repeat("r", InputCeiling-1)
	prompt := BuildTailorPrompt(resume, "job text")
	assert.Contains(t, prompt, resume)
}

func TestBuildTailorPrompt_TruncatesAtCeiling(t *testing.T) {
	resume := strings.Repeat("r", InputCeiling+500)
	job := strings.Repeat("j", InputCeiling+500)
	prompt := BuildTailorPrompt(resume, job)

	assert.Contains(t, prompt, strings.Repeat("r", InputCeiling))
	assert.NotContains(t, prompt, strings.Repeat("r", InputCeiling+1))
	assert.Contains(t, prompt, strings.Repeat("j", InputCeiling))
	assert.NotContains(t, prompt, strings.Repeat("j", InputCeiling+1))
}

func TestBuildCoverLetterPrompt_InterpolatesInputs(t *testing.T) {
	prompt := BuildCoverLetterPrompt("MY RESUME", "THE JOB")

	assert.Contains(t, prompt, "MY RESUME")
	assert.Contains(t, prompt, "THE JOB")
	assert.Contains(t, prompt, "coverLetter")
	assert.Contains(t, prompt, "linkedinMessage")
	assert.Contains(t, prompt, "max 350 words")
	assert.Contains(t, prompt, "max 300 characters")
}

func TestBuildPrompts_Deterministic(t *testing.T) {
	a := BuildTailorPrompt("resume", "job")
	b := BuildTailorPrompt("resume", "job")
	assert.Equal(t, a, b)
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get(promptFile, "no-such-prompt")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Hello {{.Name}}, welcome to {{.Place}}", map[string]string{
		"Name":  "Ada",
		"Place": "the team",
	})
	assert.Equal(t, "Hello Ada, welcome to the team", out)
}
