package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

// MsgUnsupportedUpload is returned when /analyze receives a file that is neither PDF nor DOCX
const MsgUnsupportedUpload = "Only PDF and DOCX files are supported"

// handleRoot reports that the API is up
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "Resume matcher API is running"})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// upload is a validated /analyze form
type upload struct {
	filename string
	data     []byte
	job      string
}

// readUpload parses the multipart form: a "resume" file and a "job_description" field
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ErrValidation{Field: "resume", Message: "file is too large"}
		}
		return nil, &ErrValidation{Message: "Invalid multipart form: " + err.Error()}
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return nil, &ErrValidation{Field: "resume", Message: "required"}
	}
	defer file.Close()

	if !ingestion.Uploadable(header.Filename) {
		return nil, &ErrValidation{Message: MsgUnsupportedUpload}
	}

	job := r.FormValue("job_description")
	if err := pipeline.ValidateJobDescription(job); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &ErrValidation{Field: "resume", Message: "unreadable upload"}
	}
	return &upload{filename: header.Filename, data: data, job: job}, nil
}

// handleAnalyze parses an uploaded resume and scores it against the job description
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	report, err := s.analyzer.AnalyzeDocument(r.Context(), up.data, up.filename, up.job, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.saveReport(r.Context(), report)

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{Success: true, AnalysisReport: report})
}

// handleAnalyzeStream runs the same analysis and streams progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	up, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	onProgress := func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.logger.Warn("error writing SSE event", zap.Error(err))
		}
	}

	report, err := s.analyzer.AnalyzeDocument(r.Context(), up.data, up.filename, up.job, onProgress)
	if err != nil {
		sse.WriteError(errorMessage(err))
		return
	}
	s.saveReport(r.Context(), report)

	if err := sse.WriteEvent("result", AnalyzeResponse{Success: true, AnalysisReport: report}); err != nil {
		s.logger.Warn("error writing SSE result", zap.Error(err))
	}
}

// saveReport stores the report when history is enabled. Failures only cost history, so they are logged.
func (s *Server) saveReport(ctx context.Context, report *types.AnalysisReport) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveAnalysis(ctx, report); err != nil {
		s.logger.Warn("failed to save analysis", zap.String("source", report.Source), zap.Error(err))
	}
}

// handleKeywords extracts job keywords
func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	keywords := s.analyzer.Keywords(req.Text)
	s.jsonResponse(w, http.StatusOK, KeywordsResponse{Keywords: keywords, Count: len(keywords)})
}

// handleSkillGap compares resume and job skills
func (s *Server) handleSkillGap(w http.ResponseWriter, r *http.Request) {
	var req TextPairRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.analyzer.SkillGap(req.ResumeText, req.JobDescription))
}

// handleATSScore computes the composite ATS score
func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	var req ATSScoreRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	var pct float64
	if req.SkillMatchPercent != nil {
		pct = *req.SkillMatchPercent
	} else {
		pct = s.analyzer.SkillGap(req.ResumeText, req.JobDescription).SkillMatchPercent
	}

	s.jsonResponse(w, http.StatusOK, s.analyzer.ATSScore(req.ResumeText, req.JobDescription, pct))
}

// handleMatch ranks caller-supplied embeddings
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := ranking.AnalyzeMatch(req.ResumeEmbedding, req.JobEmbedding, req.Chunks)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListAnalyses lists stored analyses, newest first. Accepts ?limit=N.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "analysis history"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	analyses, err := s.store.ListAnalyses(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, AnalysesResponse{Analyses: analyses, Count: len(analyses)})
}

// handleGetAnalysis returns one stored report
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, &ErrUnavailable{Feature: "analysis history"})
		return
	}

	id := r.PathValue("id")
	report, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if report == nil {
		s.writeError(w, &ErrNotFound{Resource: "analysis", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}
