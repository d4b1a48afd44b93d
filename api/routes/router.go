package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/samotors/vehicle-backend/api/controllers"
	"github.com/samotors/vehicle-backend/api/middleware"
	authsvc "github.com/samotors/vehicle-backend/internal/auth"
	"github.com/samotors/vehicle-backend/internal/users"
	"github.com/samotors/vehicle-backend/internal/vehicles"
	"github.com/samotors/vehicle-backend/pkg/config"
	"github.com/samotors/vehicle-backend/pkg/enums"
	"github.com/samotors/vehicle-backend/pkg/logger"
	"github.com/samotors/vehicle-backend/pkg/metrics"
	"github.com/samotors/vehicle-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. The metrics handler is
// optional; when nil the /metrics route is not mounted.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
	AuthService    authsvc.Service
	UserRepo       *users.Repository
	VehicleRepo    *vehicles.Repository
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, deps.UserRepo, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, deps.UserRepo, logg)
	requireAdmin := middleware.RequireLevel(enums.UserLevelAdmin, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"db":    deps.DB,
			"redis": deps.Redis,
		}))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", controllers.UsersMe(deps.UserRepo, logg))
			r.Put("/me", controllers.UsersUpdateMe(deps.UserRepo, logg))
			r.Put("/me/password", controllers.AuthChangePassword(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(requireAuth, requireAdmin)
		r.Get("/", controllers.UsersList(deps.UserRepo, logg))
		r.Get("/{id}", controllers.UsersGet(deps.UserRepo, logg))
		r.Put("/{id}", controllers.UsersUpdate(deps.UserRepo, logg))
		r.Delete("/{id}", controllers.UsersDelete(deps.UserRepo, logg))
	})

	r.Route("/api/v1/vehicles", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/", controllers.VehiclesSearch(deps.VehicleRepo, logg))
			r.Get("/{id}", controllers.VehiclesGet(deps.VehicleRepo, logg))
			r.Get("/brand/{brand}", controllers.VehiclesByBrand(deps.VehicleRepo, logg))
			r.Get("/category/{category}", controllers.VehiclesByCategory(deps.VehicleRepo, logg))
			r.Get("/price/{min}/{max}", controllers.VehiclesByPriceRange(deps.VehicleRepo, logg))
			r.Get("/year/{min}/{max}", controllers.VehiclesByYearRange(deps.VehicleRepo, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", controllers.VehiclesCreate(deps.VehicleRepo, logg))
			r.Put("/{id}", controllers.VehiclesUpdate(deps.VehicleRepo, logg))
			r.Delete("/{id}", controllers.VehiclesDelete(deps.VehicleRepo, logg))
		})
	})

	return r
}
