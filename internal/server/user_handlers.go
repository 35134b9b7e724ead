package server

import (
	"net/http"
	"net/mail"
	"time"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/db/models"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
	"github.com/RomanPopovMB/taskmanager/internal/services/iam"
)

// UserHandlers wires the user endpoints.
type UserHandlers struct {
	users      repository.UserRepository
	policy     *iam.PolicyService
	bcryptCost int
}

// NewUserHandlers creates the handler set for user management.
func NewUserHandlers(users repository.UserRepository, policy *iam.PolicyService, bcryptCost int) *UserHandlers {
	return &UserHandlers{users: users, policy: policy, bcryptCost: bcryptCost}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// userResponse never carries the password hash or the rotation
// identifier.
type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// Register handles POST /api/user. Registration is public and always
// creates a plain user account; only an admin can promote it
// afterwards.
func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" || req.Password == "" {
		respondBadRequest(w, "name and password are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondBadRequest(w, "email is not a valid address")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		respondError(w, err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         string(auth.RoleUser),
		PasswordHash: hash,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newUserResponse(user))
}

// List handles GET /api/user. Admin only.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminOnly, nil); err != nil {
		respondError(w, err)
		return
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/user/{id}. Admin or the account itself.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceUser, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AllRoles, ref); err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newUserResponse(user))
}

// Update handles PUT /api/user/{id}. Admin or the account itself;
// role changes are admin only.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceUser, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminAndUser, ref); err != nil {
		respondError(w, err)
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	if req.Name != nil {
		if *req.Name == "" {
			respondBadRequest(w, "name must not be empty")
			return
		}
		user.Name = *req.Name
	}
	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			respondBadRequest(w, "email is not a valid address")
			return
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, h.bcryptCost)
		if err != nil {
			respondError(w, err)
			return
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		if !identity.IsAdmin() {
			respondError(w, auth.ErrForbidden)
			return
		}
		role, valid := auth.ParseRole(*req.Role)
		if !valid {
			respondBadRequest(w, "role must be one of admin, user, viewer")
			return
		}
		user.Role = string(role)
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newUserResponse(user))
}

// Delete handles DELETE /api/user/{id}. Admin or the account itself.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromRequest(w, r)
	if !ok {
		return
	}
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	ref := &iam.ResourceRef{Type: iam.ResourceUser, ID: id}
	if err := h.policy.EnforceIdentity(r.Context(), identity, auth.AdminAndUser, ref); err != nil {
		respondError(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
