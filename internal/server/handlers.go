package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/recruiter-copilot/internal/ingestion"
	"github.com/jonathan/recruiter-copilot/internal/types"
)

// maxJSONBody bounds JSON request bodies; resumes pasted as text fit comfortably.
const maxJSONBody = 1 << 20

// handleJobPosting generates a Markdown job posting
func (s *Server) handleJobPosting(w http.ResponseWriter, r *http.Request) {
	var req types.JobPostingRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if strings.TrimSpace(req.Tone) == "" {
		req.Tone = s.defaultTone
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	text, fallback := s.composer.ComposeJobPostingText(r.Context(), req)
	s.jsonResponse(w, http.StatusOK, types.TextResult{Text: text, Fallback: fallback})
}

// handleInterviewScript generates an interview question script
func (s *Server) handleInterviewScript(w http.ResponseWriter, r *http.Request) {
	var req types.InterviewScriptRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	text, fallback := s.composer.ComposeInterviewScriptText(r.Context(), req.Title, req.Skills)
	s.jsonResponse(w, http.StatusOK, types.TextResult{Text: text, Fallback: fallback})
}

// handleResumeMatch compares pasted resume text with a job description
func (s *Server) handleResumeMatch(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeMatchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	s.resumeMatch(w, r, req)
}

// handleResumeMatchUpload compares an uploaded resume document with a job description.
// Form fields: job_description (text) and resume (file).
func (s *Server) handleResumeMatchUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxDocumentSize+maxJSONBody)
	if err := r.ParseMultipartForm(ingestion.MaxDocumentSize); err != nil {
		s.failure(w, r, &ErrValidation{Message: "invalid multipart form: " + err.Error()})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.failure(w, r, &ErrValidation{Field: "resume", Message: "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxDocumentSize+1))
	if err != nil {
		s.failure(w, r, &ErrValidation{Field: "resume", Message: "failed to read upload: " + err.Error()})
		return
	}
	if len(data) > ingestion.MaxDocumentSize {
		s.failure(w, r, &ErrValidation{Field: "resume", Message: "file exceeds 10 MiB"})
		return
	}

	text, err := ingestion.ExtractText(r.Context(), header.Filename, data)
	if err != nil {
		var unsupported *ingestion.UnsupportedFormatError
		if !errors.As(err, &unsupported) {
			err = &ErrValidation{Field: "resume", Message: err.Error()}
		}
		s.failure(w, r, err)
		return
	}

	s.resumeMatch(w, r, types.ResumeMatchRequest{
		JobDescription: r.FormValue("job_description"),
		ResumeText:     text,
	})
}

func (s *Server) resumeMatch(w http.ResponseWriter, r *http.Request, req types.ResumeMatchRequest) {
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := s.composer.ComposeResumeMatch(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleMarketAnalysis estimates salary range and rare skills for a role
func (s *Server) handleMarketAnalysis(w http.ResponseWriter, r *http.Request) {
	var req types.MarketAnalysisRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}

	result, err := s.composer.ComposeMarketAnalysis(r.Context(), req.Title, req.Seniority)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// decodeJSON reads a single JSON object into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return nil
}
