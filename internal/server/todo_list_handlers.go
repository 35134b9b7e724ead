package server

import (
	"net/http"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/db/models"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
	"github.com/RomanPopovMB/taskmanager/internal/services/iam"
)

// TodoListHandlers wires the todo list endpoints.
type TodoListHandlers struct {
	lists  repository.TodoListRepository
	policy *iam.PolicyService
}

// NewTodoListHandlers creates the handler set for todo lists.
func NewTodoListHandlers(lists repository.TodoListRepository, policy *iam.PolicyService) *TodoListHandlers {
	return &TodoListHandlers{lists: lists, policy: policy}
}

type createTodoListRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTodoListRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type todoListResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     int64  `json:"owner_id"`
}

func newTodoListResponse(l *models.TodoList) todoListResponse {
	return todoListResponse{ID: l.ID, Title: l.Title, Description: l.Description, OwnerID: l.OwnerID}
}

// Create handles POST /api/todo_list. The list is always owned by the
// caller; there is no way to create a list for someone else.
func (h *TodoListHandlers) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminAndUser, nil); err != nil {
		respondError(w, err)
		return
	}

	var req createTodoListRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		respondBadRequest(w, "title is required")
		return
	}

	list := &models.TodoList{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     identity.UserID,
	}
	if err := h.lists.Create(r.Context(), list); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTodoListResponse(list))
}

// List handles GET /api/todo_list. Admins see every list; everyone
// else sees only their own.
func (h *TodoListHandlers) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AllRoles, nil); err != nil {
		respondError(w, err)
		return
	}

	lists, err := h.lists.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]todoListResponse, 0, len(lists))
	for i := range lists {
		if !identity.IsAdmin() && lists[i].OwnerID != identity.UserID {
			continue
		}
		out = append(out, newTodoListResponse(&lists[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/todo_list/{id}. Owner or admin.
func (h *TodoListHandlers) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceTodoList, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AllRoles, ref); err != nil {
		respondError(w, err)
		return
	}

	list, err := h.lists.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTodoListResponse(list))
}

// Update handles PUT /api/todo_list/{id}. Owner or admin; ownership
// itself never changes hands.
func (h *TodoListHandlers) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceTodoList, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminAndUser, ref); err != nil {
		respondError(w, err)
		return
	}

	var req updateTodoListRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	list, err := h.lists.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			respondBadRequest(w, "title must not be empty")
			return
		}
		list.Title = *req.Title
	}
	if req.Description != nil {
		list.Description = *req.Description
	}

	if err := h.lists.Update(r.Context(), list); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTodoListResponse(list))
}

// Delete handles DELETE /api/todo_list/{id}. Owner or admin. Tasks on
// the list are removed with it by the schema's cascade rule.
func (h *TodoListHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceTodoList, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminAndUser, ref); err != nil {
		respondError(w, err)
		return
	}

	if err := h.lists.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
