package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/narratorprep/mstat/internal/pagetext"
	"github.com/narratorprep/mstat/internal/pipeline"
)

type analyzeRequest struct {
	Source string `json:"source"`
}

// handleAnalyze accepts either a JSON body naming a path/URL source or a
// multipart upload, and queues an analysis job.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")

	var job *pipeline.Job
	if strings.HasPrefix(contentType, "multipart/form-data") {
		var err error
		job, err = s.uploadJob(w, r)
		if err != nil {
			return // response already written
		}
	} else {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
		if req.Source == "" {
			jsonError(w, "source is required", http.StatusBadRequest)
			return
		}
		job = pipeline.NewJob(req.Source)
	}

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/analyze/%s", job.ID),
	})
}

func (s *Server) uploadJob(w http.ResponseWriter, r *http.Request) (*pipeline.Job, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxDownloadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, err
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, err
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !pagetext.IsSupportedExtension(filename) {
		err := fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxDownloadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, err
	}
	if int64(len(data)) > s.cfg.MaxDownloadBytes {
		err := fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxDownloadBytes)
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return nil, err
	}

	return pipeline.NewUploadJob(filename, data), nil
}

func (s *Server) handleAnalyzeStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleRunStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"runs":        s.analyzer.Runs().Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
