package v1

import (
	"net/http"

	"github.com/vmunix/renamarr/internal/jobs"
)

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	job := s.deps.Jobs.Submit(req.toJobRequest())
	writeJSON(w, http.StatusAccepted, job.Summary())
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	list := s.deps.Jobs.List()
	out := make([]jobs.Summary, len(list))
	for i, j := range list {
		out[i] = j.Summary()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	job := s.deps.Jobs.Get(r.PathValue("id"))
	if job == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.Detail())
}

func (s *Server) cancelJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.deps.Jobs.Cancel(id) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
		return
	}
	writeJSON(w, http.StatusOK, cancelResponse{JobID: id, Cancelled: true})
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	if !s.deps.Jobs.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
