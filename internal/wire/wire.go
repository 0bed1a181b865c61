package wire

import (
	"context"
	"net/http"
	"time"

	"healthcare-booking/internal/adaptor"
	"healthcare-booking/internal/data/entity"
	"healthcare-booking/internal/data/repository"
	"healthcare-booking/internal/usecase"
	"healthcare-booking/pkg/middleware"
	"healthcare-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled HTTP router.
type App struct {
	Router *chi.Mux
}

// Guards are the infrastructure hooks the router needs besides the services.
type Guards struct {
	Limiter  middleware.Limiter
	Denylist middleware.DenyChecker
	// Ping reports storage health for /health.
	Ping func(ctx context.Context) error
}

// routes carries what every wireX function needs.
type routes struct {
	config *utils.Config
	log    *zap.Logger
	guards Guards

	auth func(http.Handler) http.Handler
}

func (rt routes) role(roles ...entity.UserRole) func(http.Handler) http.Handler {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return middleware.RequireRole(rt.log, names...)
}

func (rt routes) limit(name string, attempts int) func(http.Handler) http.Handler {
	return middleware.RateLimit(rt.guards.Limiter, name, attempts, rt.config.RateLimit.Window(), rt.log)
}

// Wiring builds services, handlers and the router.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	deps usecase.Dependencies,
	guards Guards,
	logger *zap.Logger,
) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, config, deps, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, deps.Tokens, config, guards, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	tokens *utils.TokenManager,
	config *utils.Config,
	guards Guards,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	r.Use(middleware.ClientInfo)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, http.StatusMethodNotAllowed, false, "Method not allowed", nil, nil)
	})

	rt := routes{
		config: config,
		log:    logger,
		guards: guards,
		auth:   middleware.Auth(tokens, guards.Denylist, logger),
	}

	// Apply routes
	wireAuth(r, handler.Auth, rt)
	wireUser(r, handler.User, rt)
	wireDoctor(r, handler.Doctor, rt)
	wireAppointment(r, handler.Appointment, rt)
	wireNotification(r, handler.Notification, rt)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if guards.Ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := guards.Ping(ctx); err != nil {
				logger.Error("Health check failed", zap.Error(err))
				utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Service unavailable", nil, nil)
				return
			}
		}
		utils.ResponseSuccess(w, "OK", map[string]string{"status": "healthy"})
	})

	return r
}
