package server

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/db/models"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
	"github.com/RomanPopovMB/taskmanager/internal/services/iam"
)

// TaskHandlers wires the task endpoints.
type TaskHandlers struct {
	tasks  repository.TaskRepository
	lists  repository.TodoListRepository
	policy *iam.PolicyService
}

// NewTaskHandlers creates the handler set for tasks.
func NewTaskHandlers(tasks repository.TaskRepository, lists repository.TodoListRepository, policy *iam.PolicyService) *TaskHandlers {
	return &TaskHandlers{tasks: tasks, lists: lists, policy: policy}
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
	TodoListID  int64      `json:"todo_list_id"`
	StatusID    int64      `json:"status_id"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   *bool      `json:"completed"`
	StatusID    *int64     `json:"status_id"`
}

type taskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Completed   bool      `json:"completed"`
	TodoListID  int64     `json:"todo_list_id"`
	StatusID    int64     `json:"status_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func newTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		TodoListID:  t.TodoListID,
		StatusID:    t.StatusID,
		CreatedAt:   t.CreatedAt,
	}
}

// Create handles POST /api/task. The caller must own the target todo
// list (or be an admin).
func (h *TaskHandlers) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Title == "" {
		respondBadRequest(w, "title is required")
		return
	}
	if req.TodoListID <= 0 {
		respondBadRequest(w, "todo_list_id is required")
		return
	}

	// Placing a task on a list is a mutation of that list.
	ref := &iam.ResourceRef{Type: iam.ResourceTodoList, ID: req.TodoListID}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminAndUser, ref); err != nil {
		respondError(w, err)
		return
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		TodoListID:  req.TodoListID,
		StatusID:    req.StatusID,
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if err := h.tasks.Create(r.Context(), task); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTaskResponse(task))
}

// List handles GET /api/task. Admins see every task; everyone else
// sees only tasks on their own lists.
func (h *TaskHandlers) List(w http.ResponseWriter, r *http.Request) {
	h.respondFiltered(w, r, func() ([]models.Task, error) {
		return h.tasks.List(r.Context())
	})
}

// ListByTitle handles GET /api/task/title/{title}.
func (h *TaskHandlers) ListByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil || title == "" {
		respondBadRequest(w, "title is required")
		return
	}
	h.respondFiltered(w, r, func() ([]models.Task, error) {
		return h.tasks.ListByTitle(r.Context(), title)
	})
}

// ListByDueDate handles GET /api/task/due_date/{date}. The date is a
// calendar day in YYYY-MM-DD form; all tasks due that day match.
func (h *TaskHandlers) ListByDueDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		respondBadRequest(w, "date must be YYYY-MM-DD")
		return
	}
	h.respondFiltered(w, r, func() ([]models.Task, error) {
		return h.tasks.ListByDueDate(r.Context(), date)
	})
}

// ListByCompleted handles GET /api/task/completed/{completed}.
func (h *TaskHandlers) ListByCompleted(w http.ResponseWriter, r *http.Request) {
	completed, err := strconv.ParseBool(chi.URLParam(r, "completed"))
	if err != nil {
		respondBadRequest(w, "completed must be true or false")
		return
	}
	h.respondFiltered(w, r, func() ([]models.Task, error) {
		return h.tasks.ListByCompleted(r.Context(), completed)
	})
}

// respondFiltered runs a task query and writes the result, restricted
// to the caller's own lists unless the caller is an admin.
func (h *TaskHandlers) respondFiltered(w http.ResponseWriter, r *http.Request, query func() ([]models.Task, error)) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AllRoles, nil); err != nil {
		respondError(w, err)
		return
	}

	tasks, err := query()
	if err != nil {
		respondError(w, err)
		return
	}

	var ownedLists map[int64]bool
	if !identity.IsAdmin() {
		lists, err := h.lists.List(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		ownedLists = make(map[int64]bool, len(lists))
		for i := range lists {
			if lists[i].OwnerID == identity.UserID {
				ownedLists[lists[i].ID] = true
			}
		}
	}

	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		if ownedLists != nil && !ownedLists[tasks[i].TodoListID] {
			continue
		}
		out = append(out, newTaskResponse(&tasks[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/task/{id}. Owner of the parent list or admin.
func (h *TaskHandlers) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceTask, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AllRoles, ref); err != nil {
		respondError(w, err)
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTaskResponse(task))
}

// Update handles PUT /api/task/{id}. Owner of the parent list or
// admin; a task never moves between lists.
func (h *TaskHandlers) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceTask, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminAndUser, ref); err != nil {
		respondError(w, err)
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	task, err := h.tasks.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Title != nil {
		if *req.Title == "" {
			respondBadRequest(w, "title must not be empty")
			return
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.StatusID != nil {
		task.StatusID = *req.StatusID
	}

	if err := h.tasks.Update(r.Context(), task); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newTaskResponse(task))
}

// Delete handles DELETE /api/task/{id}. Owner of the parent list or
// admin.
func (h *TaskHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceTask, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminAndUser, ref); err != nil {
		respondError(w, err)
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
