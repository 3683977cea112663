package tailoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/jobdesc"
	"github.com/jonathan/resume-tailor/internal/llm"
)

// fakeClient is an llm.Client returning canned output and recording calls.
type fakeClient struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeClient) Generate(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) Close() error { return nil }

func resumePDF(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "resume.pdf"))
	require.NoError(t, err)
	return data
}

const jobText = "We are looking for a Software Engineer with Python and AWS experience. Remote, full time position."

func TestTailor_Success(t *testing.T) {
	client := &fakeClient{response: validResumeJSON}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	resume, err := o.Tailor(context.Background(), Request{
		ResumePDF: resumePDF(t),
		Job:       jobdesc.TextInput(jobText),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, resume.Skills, "Python")

	// The prompt carries both the extracted resume text and the job text.
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "John Doe")
	assert.Contains(t, client.prompts[0], "AWS experience")
}

func TestTailor_MissingResume(t *testing.T) {
	client := &fakeClient{response: validResumeJSON}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	_, err := o.Tailor(context.Background(), Request{Job: jobdesc.TextInput(jobText)})
	require.Error(t, err)

	var missing *MissingInputError
	assert.ErrorAs(t, err, &missing)
	// Fail-fast: no generation call was made.
	assert.Equal(t, 0, client.calls)
}

func TestTailor_MissingJobInput(t *testing.T) {
	client := &fakeClient{response: validResumeJSON}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	_, err := o.Tailor(context.Background(), Request{ResumePDF: resumePDF(t)})
	require.Error(t, err)

	var missing *MissingInputError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, 0, client.calls)
}

func TestTailor_UnreadablePDF(t *testing.T) {
	client := &fakeClient{response: validResumeJSON}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	_, err := o.Tailor(context.Background(), Request{
		ResumePDF: []byte("not a pdf"),
		Job:       jobdesc.TextInput(jobText),
	})
	require.Error(t, err)

	var pdfErr *extraction.UnreadablePDFError
	assert.ErrorAs(t, err, &pdfErr)
	assert.Equal(t, 0, client.calls)
}

func TestTailor_ScrapingBlockedAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := &fakeClient{response: validResumeJSON}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	_, err := o.Tailor(context.Background(), Request{
		ResumePDF: resumePDF(t),
		Job:       jobdesc.URLInput(server.URL),
	})
	require.Error(t, err)

	var blocked *jobdesc.ScrapingBlockedError
	assert.ErrorAs(t, err, &blocked)
	assert.Equal(t, 0, client.calls)
}

func TestTailor_UpstreamError(t *testing.T) {
	client := &fakeClient{err: &llm.UpstreamError{Message: "quota exceeded"}}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	_, err := o.Tailor(context.Background(), Request{
		ResumePDF: resumePDF(t),
		Job:       jobdesc.TextInput(jobText),
	})
	require.Error(t, err)

	var upstream *llm.UpstreamError
	assert.ErrorAs(t, err, &upstream)
	// One call, no retry.
	assert.Equal(t, 1, client.calls)
}

func TestTailor_MalformedOutput(t *testing.T) {
	client := &fakeClient{response: "Here is your resume: it looks great!"}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	_, err := o.Tailor(context.Background(), Request{
		ResumePDF: resumePDF(t),
		Job:       jobdesc.TextInput(jobText),
	})
	require.Error(t, err)

	var malformed *MalformedOutputError
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, client.calls)
}

func TestCoverLetter_Success(t *testing.T) {
	client := &fakeClient{response: `{"coverLetter": "Dear Hiring Manager, I am writing to apply.", "linkedinMessage": "Hi, I just applied."}`}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	bundle, err := o.CoverLetter(context.Background(), Request{
		ResumePDF: resumePDF(t),
		Job:       jobdesc.TextInput(jobText),
	})
	require.NoError(t, err)
	assert.Contains(t, bundle.CoverLetter, "Dear Hiring Manager")
}

// Both flows abort on a blocked scrape; the cover letter flow does not
// silently continue with an empty job description.
func TestCoverLetter_ScrapingBlockedAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := &fakeClient{response: `{"coverLetter": "x", "linkedinMessage": "y"}`}
	o := NewOrchestrator(client, jobdesc.NewResolver(jobdesc.Options{}))

	_, err := o.CoverLetter(context.Background(), Request{
		ResumePDF: resumePDF(t),
		Job:       jobdesc.URLInput(server.URL),
	})
	require.Error(t, err)

	var blocked *jobdesc.ScrapingBlockedError
	assert.ErrorAs(t, err, &blocked)
	assert.Equal(t, 0, client.calls)
}
