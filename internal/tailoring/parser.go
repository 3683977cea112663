package tailoring

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-tailor/internal/llm"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

var (
	tailoredResumeSchema    = mustLoadSchema("schemas/tailored_resume.json")
	coverLetterBundleSchema = mustLoadSchema("schemas/cover_letter_bundle.json")
)

func mustLoadSchema(path string) *gojsonschema.Schema {
	data, err := schemaFiles.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("failed to read embedded schema %s: %v", path, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema %s: %v", path, err))
	}
	return schema
}

// ParseTailoredResume coerces raw model output into a TailoredResume.
// Code fences are stripped unconditionally, the text is trimmed, parsed as
// strict JSON, and validated against the output schema. After validation,
// analysis.addedSkills is filtered to the subset of skills so the contract
// holds for every caller regardless of what the model returned.
func ParseTailoredResume(raw string) (*TailoredResume, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := validateAgainst(tailoredResumeSchema, cleaned, raw); err != nil {
		return nil, err
	}

	var resume TailoredResume
	if err := json.Unmarshal([]byte(cleaned), &resume); err != nil {
		return nil, &MalformedOutputError{Message: "failed to decode tailored resume", Raw: raw, Cause: err}
	}

	resume.Analysis.AddedSkills = FilterAddedSkills(resume.Skills, resume.Analysis.AddedSkills)

	return &resume, nil
}

// ParseCoverLetterBundle coerces raw model output into a CoverLetterBundle.
func ParseCoverLetterBundle(raw string) (*CoverLetterBundle, error) {
	cleaned := llm.CleanJSONBlock(raw)

	if err := validateAgainst(coverLetterBundleSchema, cleaned, raw); err != nil {
		return nil, err
	}

	var bundle CoverLetterBundle
	if err := json.Unmarshal([]byte(cleaned), &bundle); err != nil {
		return nil, &MalformedOutputError{Message: "failed to decode cover letter bundle", Raw: raw, Cause: err}
	}

	return &bundle, nil
}

// validateAgainst runs schema validation, distinguishing not-JSON-at-all from
// JSON that misses the contract. Both are MalformedOutputError carrying the
// original raw text for server-side logs.
func validateAgainst(schema *gojsonschema.Schema, cleaned, raw string) error {
	if !json.Valid([]byte(cleaned)) {
		return &MalformedOutputError{Message: "response is not valid JSON", Raw: raw}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return &MalformedOutputError{Message: "schema validation could not run", Raw: raw, Cause: err}
	}

	if !result.Valid() {
		var fields []string
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			fields = append(fields, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return &MalformedOutputError{
			Message: "schema validation failed: " + strings.Join(fields, "; "),
			Raw:     raw,
		}
	}

	return nil
}

// FilterAddedSkills returns the entries of added that also appear in skills,
// preserving order. Comparison is case-insensitive since models are not
// consistent about casing between the two lists.
func FilterAddedSkills(skills, added []string) []string {
	if len(added) == 0 {
		return added
	}

	known := make(map[string]bool, len(skills))
	for _, s := range skills {
		known[strings.ToLower(strings.TrimSpace(s))] = true
	}

	filtered := make([]string, 0, len(added))
	for _, a := range added {
		if known[strings.ToLower(strings.TrimSpace(a))] {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
