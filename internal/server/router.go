package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	taskmiddleware "github.com/RomanPopovMB/taskmanager/internal/middleware"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
	"github.com/RomanPopovMB/taskmanager/internal/services/iam"
)

// RouterOptions controls the construction of the HTTP router. The
// zero value is not usable: the services and repositories must be set.
type RouterOptions struct {
	Auth     *iam.AuthService
	Policy   *iam.PolicyService
	Tokens   *auth.TokenService
	Users    repository.UserRepository
	Lists    repository.TodoListRepository
	Tasks    repository.TaskRepository
	Statuses repository.TaskStatusRepository

	// BcryptCost is the work factor for hashing new passwords. Zero
	// selects the bcrypt default.
	BcryptCost int

	CORSOptions   *cors.Options
	Middleware    []func(http.Handler) http.Handler
	HealthHandler http.HandlerFunc
}

// DefaultCORSOptions returns the shared development CORS policy.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// NewRouter assembles a chi.Router with shared middleware, CORS
// policy, the bearer-token verifier, and the API handlers mounted.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	// Apply custom middleware passed from the caller.
	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.Use(taskmiddleware.NewAuthnMiddleware(opts.Tokens))

	healthHandler := opts.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	r.Get("/health", healthHandler)

	authHandlers := NewAuthHandlers(opts.Auth)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authHandlers.Login)
		r.Post("/refresh", authHandlers.Refresh)
		r.Post("/logout", authHandlers.Logout)
	})

	userHandlers := NewUserHandlers(opts.Users, opts.Policy, opts.BcryptCost)
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/", userHandlers.Register)
		r.Get("/", userHandlers.List)
		r.Get("/{id}", userHandlers.Get)
		r.Put("/{id}", userHandlers.Update)
		r.Delete("/{id}", userHandlers.Delete)
	})

	listHandlers := NewTodoListHandlers(opts.Lists, opts.Policy)
	r.Route("/api/todo_list", func(r chi.Router) {
		r.Post("/", listHandlers.Create)
		r.Get("/", listHandlers.List)
		r.Get("/{id}", listHandlers.Get)
		r.Put("/{id}", listHandlers.Update)
		r.Delete("/{id}", listHandlers.Delete)
	})

	taskHandlers := NewTaskHandlers(opts.Tasks, opts.Lists, opts.Policy)
	r.Route("/api/task", func(r chi.Router) {
		r.Post("/", taskHandlers.Create)
		r.Get("/", taskHandlers.List)
		r.Get("/title/{title}", taskHandlers.ListByTitle)
		r.Get("/due_date/{date}", taskHandlers.ListByDueDate)
		r.Get("/completed/{completed}", taskHandlers.ListByCompleted)
		r.Get("/{id}", taskHandlers.Get)
		r.Put("/{id}", taskHandlers.Update)
		r.Delete("/{id}", taskHandlers.Delete)
	})

	statusHandlers := NewTaskStatusHandlers(opts.Statuses, opts.Policy)
	r.Route("/api/task_status", func(r chi.Router) {
		r.Post("/", statusHandlers.Create)
		r.Get("/", statusHandlers.List)
		r.Get("/{id}", statusHandlers.Get)
		r.Put("/{id}", statusHandlers.Update)
		r.Delete("/{id}", statusHandlers.Delete)
	})

	return r
}

// NewH2CHandler wraps the shared router with an h2c server to provide
// HTTP/2 over cleartext during development.
func NewH2CHandler(opts RouterOptions) http.Handler {
	return h2c.NewHandler(NewRouter(opts), &http2.Server{})
}
