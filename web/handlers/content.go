package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/scrypster/folio/internal/storage"
	"github.com/scrypster/folio/pkg/types"
)

// ContentHandlers contains the HTTP handlers for the five portfolio content
// collections.
type ContentHandlers struct {
	store storage.ContentStore
}

// NewContentHandlers creates a ContentHandlers instance.
func NewContentHandlers(store storage.ContentStore) *ContentHandlers {
	return &ContentHandlers{store: store}
}

// ListActivities handles GET /api/activities. With ?tags=a,b only entries
// matching at least one tag are returned; with ?limit=n only the n most
// recent. Without either the full diary is returned, newest first.
func (h *ContentHandlers) ListActivities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if raw := query.Get("tags"); raw != "" {
		tags := splitTags(raw)
		entries, err := h.store.ListActivities(r.Context(), tags)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list activities", err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
		return
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		entries, err := h.store.ListRecentActivities(r.Context(), limit)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list activities", err)
			return
		}
		respondJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := h.store.ListAllActivities(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list activities", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// CreateActivity handles POST /api/activities.
func (h *ContentHandlers) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var entry types.ActivityEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(entry.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required", nil)
		return
	}

	if err := h.store.SaveActivity(r.Context(), &entry); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save activity", err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// ListJobs handles GET /api/jobs.
func (h *ContentHandlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.store.ListJobs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list jobs", err)
		return
	}
	respondJSON(w, http.StatusOK, jobs)
}

// CreateJob handles POST /api/jobs.
func (h *ContentHandlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	var job types.JobRecord
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(job.Title) == "" || strings.TrimSpace(job.Company) == "" {
		respondError(w, http.StatusBadRequest, "title and company are required", nil)
		return
	}

	if err := h.store.SaveJob(r.Context(), &job); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save job", err)
		return
	}
	respondJSON(w, http.StatusCreated, job)
}

// ListEducation handles GET /api/education.
func (h *ContentHandlers) ListEducation(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListEducation(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list education", err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// CreateEducation handles POST /api/education.
func (h *ContentHandlers) CreateEducation(w http.ResponseWriter, r *http.Request) {
	var record types.EducationRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(record.Institution) == "" {
		respondError(w, http.StatusBadRequest, "institution is required", nil)
		return
	}

	if err := h.store.SaveEducation(r.Context(), &record); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save education", err)
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

// ListProjects handles GET /api/projects.
func (h *ContentHandlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list projects", err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// CreateProject handles POST /api/projects.
func (h *ContentHandlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project types.ProjectRecord
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(project.Title) == "" {
		respondError(w, http.StatusBadRequest, "title is required", nil)
		return
	}

	if err := h.store.SaveProject(r.Context(), &project); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save project", err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// ListTools handles GET /api/tools.
func (h *ContentHandlers) ListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := h.store.ListTools(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list tools", err)
		return
	}
	respondJSON(w, http.StatusOK, tools)
}

// CreateTool handles POST /api/tools.
func (h *ContentHandlers) CreateTool(w http.ResponseWriter, r *http.Request) {
	var tool types.ToolRecord
	if err := json.NewDecoder(r.Body).Decode(&tool); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(tool.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	if err := h.store.SaveTool(r.Context(), &tool); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save tool", err)
		return
	}
	respondJSON(w, http.StatusCreated, tool)
}

// splitTags parses a comma-separated tag parameter.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
