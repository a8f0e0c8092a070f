package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dgallion1/docstruct/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(up.filename, r.FormValue("title"), r.FormValue("language"), up.data)
	if err := s.orchestrator.Submit(job); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, pipeline.ErrQueueFull) {
			code = http.StatusServiceUnavailable
		}
		jsonError(w, err.Error(), code)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":       job.ID,
		"status":       pipeline.StatusQueued,
		"content_hash": job.ContentHash,
		"poll_url":     fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) handleBatchSubmit(w http.ResponseWriter, r *http.Request) {
	if !s.parseUploadForm(w, r, 10) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	language := r.FormValue("language")

	var results []map[string]any
	for _, fh := range files {
		up, _, err := s.readFileHeader(fh)
		if err != nil {
			results = append(results, map[string]any{
				"filename": up.filename,
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(up.filename, "", language, up.data)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": up.filename,
				"job_id":   job.ID,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename": up.filename,
			"job_id":   job.ID,
			"status":   pipeline.StatusQueued,
			"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
		})
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": results})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleJobDocument returns the tree of a completed job.
func (s *Server) handleJobDocument(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	format, err := outputFormat(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc := job.Document()
	if doc == nil {
		snap := job.Snapshot()
		code := http.StatusConflict
		if snap.Status == pipeline.StatusFailed {
			code = http.StatusUnprocessableEntity
		}
		jsonError(w, fmt.Sprintf("job is %s", snap.Status), code)
		return
	}
	s.writeDocument(w, doc, format)
}
