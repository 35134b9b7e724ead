package server

import (
	"net/http"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/db/models"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
	"github.com/RomanPopovMB/taskmanager/internal/services/iam"
)

// TaskStatusHandlers wires the task status endpoints. Statuses are
// global lookup values: every role may read them, only admins may
// change them.
type TaskStatusHandlers struct {
	statuses repository.TaskStatusRepository
	policy   *iam.PolicyService
}

// NewTaskStatusHandlers creates the handler set for task statuses.
func NewTaskStatusHandlers(statuses repository.TaskStatusRepository, policy *iam.PolicyService) *TaskStatusHandlers {
	return &TaskStatusHandlers{statuses: statuses, policy: policy}
}

type createTaskStatusRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type updateTaskStatusRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type taskStatusResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func newTaskStatusResponse(s *models.TaskStatus) taskStatusResponse {
	return taskStatusResponse{ID: s.ID, Name: s.Name, Color: s.Color}
}

// Create handles POST /api/task_status. Admin only.
func (h *TaskStatusHandlers) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminOnly, nil); err != nil {
		respondError(w, err)
		return
	}

	var req createTaskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		respondBadRequest(w, "name is required")
		return
	}

	status := &models.TaskStatus{Name: req.Name, Color: req.Color}
	if err := h.statuses.Create(r.Context(), status); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTaskStatusResponse(status))
}

// List handles GET /api/task_status. Any authenticated role.
func (h *TaskStatusHandlers) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AllRoles, nil); err != nil {
		respondError(w, err)
		return
	}

	statuses, err := h.statuses.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]taskStatusResponse, 0, len(statuses))
	for i := range statuses {
		out = append(out, newTaskStatusResponse(&statuses[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/task_status/{id}. Any authenticated role.
func (h *TaskStatusHandlers) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AllRoles, nil); err != nil {
		respondError(w, err)
		return
	}

	status, err := h.statuses.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTaskStatusResponse(status))
}

// Update handles PUT /api/task_status/{id}. Admin only.
func (h *TaskStatusHandlers) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminOnly, nil); err != nil {
		respondError(w, err)
		return
	}

	var req updateTaskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	status, err := h.statuses.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			respondBadRequest(w, "name must not be empty")
			return
		}
		status.Name = *req.Name
	}
	if req.Color != nil {
		status.Color = *req.Color
	}

	if err := h.statuses.Update(r.Context(), status); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTaskStatusResponse(status))
}

// Delete handles DELETE /api/task_status/{id}. Admin only.
func (h *TaskStatusHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminOnly, nil); err != nil {
		respondError(w, err)
		return
	}

	if err := h.statuses.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
