// Package api provides HTTP handlers for CareerAI endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexiou-dev/careerAI-sub001/internal/flow"
	"github.com/alexiou-dev/careerAI-sub001/internal/models"
)

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(map[string]string{"status": "healthy"}))
}

func (s *Server) flowsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(s.engine.Registry().Names()))
}

func (s *Server) invokeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.invokeHandler: processing invoke request", "method", r.Method, "path", r.URL.Path)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		slog.Warn("Server.invokeHandler: method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.InvokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.invokeHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.invokeHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	output, err := s.engine.Invoke(r.Context(), req.Flow, req.Input)
	if err != nil {
		slog.Error("Server.invokeHandler: flow invocation failed", "flow", req.Flow, "kind", models.KindOf(err), "error", err)
		writeFlowError(w, err)
		return
	}
	slog.Info("Server.invokeHandler: flow invoked successfully", "flow", req.Flow)
	writeJSONResponse(w, http.StatusOK, models.Success(output))
}

func (s *Server) jobsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	switch r.Method {
	case http.MethodGet:
		jobs, err := s.store.ListJobs()
		if err != nil {
			slog.Error("Server.jobsHandler: failed to list jobs", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list jobs"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(jobs))

	case http.MethodPost:
		var req models.JobRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("Server.jobsHandler: failed to decode JSON", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
			return
		}
		if err := req.Validate(); err != nil {
			slog.Warn("Server.jobsHandler: validation failed", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return
		}
		now := time.Now().UTC()
		job := models.Job{
			ID:          uuid.NewString(),
			Title:       req.Title,
			Company:     req.Company,
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.store.SaveJob(job); err != nil {
			slog.Error("Server.jobsHandler: failed to save job", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to save job"))
			return
		}
		slog.Info("Server.jobsHandler: job created", "id", job.ID)
		writeJSONResponse(w, http.StatusCreated, models.Success(job))

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) jobHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	if id == "" || strings.Contains(id, "/") {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid job ID"))
		return
	}
	switch r.Method {
	case http.MethodGet:
		job, err := s.store.GetJob(id)
		if err != nil {
			slog.Error("Server.jobHandler: failed to get job", "id", id, "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to get job"))
			return
		}
		if job == nil {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Job not found"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(job))

	case http.MethodDelete:
		if err := s.store.DeleteJob(id); err != nil {
			slog.Error("Server.jobHandler: failed to delete job", "id", id, "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to delete job"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(nil))

	default:
		w.Header().Set("Allow", "GET, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) resumesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	switch r.Method {
	case http.MethodGet:
		resumes, err := s.store.ListResumes()
		if err != nil {
			slog.Error("Server.resumesHandler: failed to list resumes", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list resumes"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(resumes))

	case http.MethodPost:
		var req models.ResumeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Warn("Server.resumesHandler: failed to decode JSON", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
			return
		}
		if err := req.Validate(); err != nil {
			slog.Warn("Server.resumesHandler: validation failed", "error", err)
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return
		}
		now := time.Now().UTC()
		resume := models.Resume{
			ID:        uuid.NewString(),
			Name:      req.Name,
			Content:   req.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.SaveResume(resume); err != nil {
			slog.Error("Server.resumesHandler: failed to save resume", "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to save resume"))
			return
		}
		slog.Info("Server.resumesHandler: resume created", "id", resume.ID)
		writeJSONResponse(w, http.StatusCreated, models.Success(resume))

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) resumeHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/resumes/")
	if id == "" || strings.Contains(id, "/") {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid resume ID"))
		return
	}
	switch r.Method {
	case http.MethodGet:
		resume, err := s.store.GetResume(id)
		if err != nil {
			slog.Error("Server.resumeHandler: failed to get resume", "id", id, "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to get resume"))
			return
		}
		if resume == nil {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Resume not found"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(resume))

	case http.MethodDelete:
		if err := s.store.DeleteResume(id); err != nil {
			slog.Error("Server.resumeHandler: failed to delete resume", "id", id, "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to delete resume"))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(nil))

	default:
		w.Header().Set("Allow", "GET, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) documentsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	docs, err := s.store.ListDocuments(r.URL.Query().Get("job_id"))
	if err != nil {
		slog.Error("Server.documentsHandler: failed to list documents", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list documents"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(docs))
}

// generateDocumentHandler generates a document from a stored job and resume
// and persists the result. This is the route the UI uses; ad-hoc callers can
// invoke flows directly via invokeHandler.
func (s *Server) generateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.generateDocumentHandler: processing generate request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req models.GenerateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.generateDocumentHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.generateDocumentHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	job, err := s.store.GetJob(req.JobID)
	if err != nil {
		slog.Error("Server.generateDocumentHandler: failed to get job", "id", req.JobID, "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to get job"))
		return
	}
	if job == nil {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Job not found"))
		return
	}

	input := map[string]any{
		"documentType":   string(req.DocumentType),
		"jobDescription": job.Description,
	}
	if req.ResumeID != "" {
		resume, err := s.store.GetResume(req.ResumeID)
		if err != nil {
			slog.Error("Server.generateDocumentHandler: failed to get resume", "id", req.ResumeID, "error", err)
			writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to get resume"))
			return
		}
		if resume == nil {
			writeJSONResponse(w, http.StatusNotFound, models.Error("Resume not found"))
			return
		}
		if strings.HasPrefix(resume.Content, "data:") {
			input["resumePdfDataUri"] = resume.Content
		} else {
			input["resumeText"] = resume.Content
		}
	}

	output, err := s.engine.Invoke(r.Context(), flow.FlowGenerateDocument, input)
	if err != nil {
		slog.Error("Server.generateDocumentHandler: flow invocation failed", "kind", models.KindOf(err), "error", err)
		writeFlowError(w, err)
		return
	}
	content, _ := output["document"].(string)

	doc := models.GeneratedDocument{
		ID:        uuid.NewString(),
		JobID:     req.JobID,
		ResumeID:  req.ResumeID,
		Type:      req.DocumentType,
		Flow:      flow.FlowGenerateDocument,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveDocument(doc); err != nil {
		slog.Error("Server.generateDocumentHandler: failed to save document", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to save generated document"))
		return
	}
	slog.Info("Server.generateDocumentHandler: document generated", "id", doc.ID, "type", doc.Type)
	writeJSONResponse(w, http.StatusCreated, models.Success(doc))
}
