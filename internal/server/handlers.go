package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jobscout/jobscout/internal/pipeline"
	"github.com/jobscout/jobscout/internal/resume"
	"github.com/jobscout/jobscout/internal/schema"
	"github.com/jobscout/jobscout/internal/store"
)

// SearchResponse is the aggregate result of one pipeline run.
type SearchResponse struct {
	ResumeFields *schema.ResumeFields  `json:"resume_fields"`
	JobSummaries []JobSummaryResponse  `json:"job_summaries"`
	JobAnalyses  []JobAnalysisResponse `json:"job_analyses"`
}

// JobSummaryResponse is the per-posting summary entry.
type JobSummaryResponse struct {
	ID             string   `json:"id"`
	Headline       string   `json:"headline"`
	RequiredSkills []string `json:"required_skills"`
	Summary        string   `json:"summary"`
	ApplyURL       string   `json:"apply_url,omitempty"`
}

// JobAnalysisResponse is the per-posting score and feedback entry.
type JobAnalysisResponse struct {
	ID              string `json:"id"`
	SimilarityScore int    `json:"similarity_score"`
	Feedback        string `json:"feedback"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "request must be multipart form data with a resume file")
		return
	}

	query := r.FormValue("query")

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading resume upload failed")
		return
	}

	if err := pipeline.ValidateInput(query, header.Filename, data); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := s.runner.Run(r.Context(), pipeline.NewSearchState(query, header.Filename, data))
	if err != nil {
		s.logger.Error("pipeline run failed",
			zap.Error(err),
			zap.String("request_id", RequestID(r.Context())),
		)
		writeError(w, statusForRunError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, buildSearchResponse(state))
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	postings, err := s.store.ListPostings(r.Context(), limitParam(r, 50))
	if err != nil {
		s.logger.Error("list postings failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "listing job postings failed")
		return
	}

	writeJSON(w, http.StatusOK, postings)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	posting, err := s.store.GetPosting(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job posting not found")
			return
		}
		s.logger.Error("get posting failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "loading job posting failed")
		return
	}

	writeJSON(w, http.StatusOK, posting)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListHistory(r.Context(), limitParam(r, 20))
	if err != nil {
		s.logger.Error("list history failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "listing search history failed")
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func buildSearchResponse(state pipeline.SearchState) *SearchResponse {
	resp := &SearchResponse{
		ResumeFields: state.Resume,
		JobSummaries: make([]JobSummaryResponse, 0, state.Postings.Len()),
		JobAnalyses:  make([]JobAnalysisResponse, 0, state.Postings.Len()),
	}

	for _, posting := range state.Postings.Items {
		summary := state.Summaries[posting.ID]

		resp.JobSummaries = append(resp.JobSummaries, JobSummaryResponse{
			ID:             posting.ID,
			Headline:       posting.Headline(),
			RequiredSkills: summary.RequiredSkills,
			Summary:        summary.Summary,
			ApplyURL:       posting.ApplyURL,
		})

		resp.JobAnalyses = append(resp.JobAnalyses, JobAnalysisResponse{
			ID:              posting.ID,
			SimilarityScore: state.Scores[posting.ID],
			Feedback:        state.Feedback[posting.ID],
		})
	}

	return resp
}

// statusForRunError distinguishes bad input from collaborator failures.
func statusForRunError(err error) int {
	if errors.Is(err, resume.ErrUnsupportedFormat) || errors.Is(err, resume.ErrEmptyText) {
		return http.StatusBadRequest
	}
	if errors.Is(err, pipeline.ErrNoPostings) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func limitParam(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
