package tailoring

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/extraction"
	"github.com/jonathan/resume-tailor/internal/jobdesc"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
)

// Request carries the inputs of one tailoring or cover letter request.
// Everything is request-scoped: nothing here is retained after the flow
// returns.
type Request struct {
	ResumePDF []byte
	Job       jobdesc.Input
}

// Orchestrator composes extraction, job resolution, prompt construction,
// generation, and parsing into the two request flows. It holds no mutable
// state; concurrent requests share nothing but the underlying clients.
type Orchestrator struct {
	client   llm.Client
	resolver *jobdesc.Resolver
}

// NewOrchestrator creates an Orchestrator over a generation client and a job
// description resolver.
func NewOrchestrator(client llm.Client, resolver *jobdesc.Resolver) *Orchestrator {
	return &Orchestrator{client: client, resolver: resolver}
}

// Tailor runs the resume tailoring flow: validate inputs, extract resume text
// and resolve the job description (in parallel, they are independent), build
// the prompt, call the model once, and parse the structured result.
//
// Every failure is terminal and typed; nothing is retried here.
func (o *Orchestrator) Tailor(ctx context.Context, req Request) (*TailoredResume, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resumeText, jobText, err := o.gatherInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildTailorPrompt(resumeText, jobText)

	raw, err := o.client.Generate(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	resume, err := ParseTailoredResume(raw)
	if err != nil {
		logMalformed("tailor", err)
		return nil, err
	}

	return resume, nil
}

// CoverLetter runs the cover letter flow. It is structurally identical to
// Tailor, including aborting when job resolution fails; the scrape error
// tells the user to paste the text instead.
func (o *Orchestrator) CoverLetter(ctx context.Context, req Request) (*CoverLetterBundle, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resumeText, jobText, err := o.gatherInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	prompt := prompts.BuildCoverLetterPrompt(resumeText, jobText)

	raw, err := o.client.Generate(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	bundle, err := ParseCoverLetterBundle(raw)
	if err != nil {
		logMalformed("cover-letter", err)
		return nil, err
	}

	return bundle, nil
}

// gatherInputs extracts resume text and resolves the job description. The two
// leaves are independent, so they run concurrently; the first error cancels
// the sibling via the group context.
func (o *Orchestrator) gatherInputs(ctx context.Context, req Request) (resumeText, jobText string, err error) {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		text, extractErr := extraction.ExtractText(req.ResumePDF)
		if extractErr != nil {
			return extractErr
		}
		resumeText = text
		return nil
	})

	g.Go(func() error {
		text, resolveErr := o.resolver.Resolve(gCtx, req.Job)
		if resolveErr != nil {
			return resolveErr
		}
		jobText = text
		return nil
	})

	if err := g.Wait(); err != nil {
		return "", "", err
	}

	return resumeText, jobText, nil
}

// validateRequest enforces the fail-fast input contract: a resume upload plus
// a valid job input, checked before any parsing or network work.
func validateRequest(req Request) error {
	if len(req.ResumePDF) == 0 {
		return &MissingInputError{Field: "resume", Message: "a resume PDF upload is required"}
	}
	if err := req.Job.Validate(); err != nil {
		return &MissingInputError{Field: "job", Message: err.Error()}
	}
	return nil
}

// logMalformed records unparseable model output server-side. The raw text
// never reaches the client; this log line is the only place it surfaces.
func logMalformed(flow string, err error) {
	if malformed, ok := err.(*MalformedOutputError); ok {
		log.Printf("[%s] model output failed parsing: %v (raw: %.500s)", flow, malformed.Message, malformed.Raw)
	}
}
