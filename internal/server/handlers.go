package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-tailor/internal/jobdesc"
	"github.com/jonathan/resume-tailor/internal/jobsearch"
	"github.com/jonathan/resume-tailor/internal/tailoring"
)

// maxUploadBytes bounds the multipart form, resume PDF included.
const maxUploadBytes = 10 << 20

// parseTailorRequest reads the multipart form shared by the tailor and
// cover letter endpoints: a "resume" PDF plus jobUrl or jobText.
func parseTailorRequest(r *http.Request) (tailoring.Request, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return tailoring.Request{}, &tailoring.MissingInputError{
			Field:   "resume",
			Message: "Resume file and either Job URL or Job Description text are required.",
		}
	}

	var req tailoring.Request
	if file, _, err := r.FormFile("resume"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return tailoring.Request{}, &tailoring.MissingInputError{
				Field:   "resume",
				Message: "Could not read the uploaded resume file.",
			}
		}
		req.ResumePDF = data
	}

	jobURL := r.FormValue("jobUrl")
	jobText := r.FormValue("jobText")
	switch {
	case jobText != "":
		req.Job = jobdesc.TextInput(jobText)
	case jobURL != "":
		req.Job = jobdesc.URLInput(jobURL)
	}

	return req, nil
}

// handleTailor rewrites an uploaded resume against a job description.
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	req, err := parseTailorRequest(r)
	if err != nil {
		s.domainError(w, err)
		return
	}

	resume, err := s.orchestrator.Tailor(r.Context(), req)
	if err != nil {
		s.domainError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"tailoredResume": resume})
}

// handleCoverLetter generates a cover letter and LinkedIn message for
// the uploaded resume and job description.
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	req, err := parseTailorRequest(r)
	if err != nil {
		s.domainError(w, err)
		return
	}

	bundle, err := s.orchestrator.CoverLetter(r.Context(), req)
	if err != nil {
		s.domainError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, bundle)
}

// handleFindJobs proxies a search against the external job aggregator.
func (s *Server) handleFindJobs(w http.ResponseWriter, r *http.Request) {
	var req jobsearch.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	listings, err := s.searcher.Search(r.Context(), req)
	if err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			s.errorResponse(w, http.StatusBadRequest, "Invalid search parameters")
			return
		}
		log.Printf("[find-jobs] search failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": listings})
}

// domainError maps a pipeline error to its HTTP response. Blocked
// scrapes carry a machine-readable code so the client can fall back to
// pasted text.
func (s *Server) domainError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[api] internal error: %v", err)
	}

	var blocked *jobdesc.ScrapingBlockedError
	if errors.As(err, &blocked) {
		details := ""
		if cause := blocked.Unwrap(); cause != nil {
			details = cause.Error()
		}
		s.jsonResponse(w, status, map[string]string{
			"error":   clientMessage(err),
			"code":    CodeScrapingFailed,
			"details": details,
		})
		return
	}

	s.errorResponse(w, status, clientMessage(err))
}
