package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/farm-api/internal/application/auth"
	"github.com/jhoicas/farm-api/internal/application/usecase"
	"github.com/jhoicas/farm-api/internal/domain/entity"
)

// RateLimit límite de peticiones por IP en los endpoints públicos de auth.
type RateLimit struct {
	Max    int
	Window time.Duration
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AccountUC  *usecase.AccountUseCase
	EmployeeUC *usecase.EmployeeUseCase
	RosterUC   *usecase.RosterUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	RateLimit  RateLimit
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	accountHandler := NewAccountHandler(deps.AccountUC)
	authHandler := NewAuthHandler(deps.AuthUC)
	throttle := authLimiter(deps.RateLimit)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", throttle, accountHandler.Register)
	authGroup.Post("/login", throttle, authHandler.Login)
	authGroup.Post("/refresh", throttle, authHandler.Refresh)

	// Registro público en /users; se registra antes del grupo protegido.
	api.Post("/users", throttle, accountHandler.Register)

	// Rutas protegidas (Bearer Token + cuenta activa)
	users := api.Group("/users", AuthMiddleware(deps.JWTSecret), LoadActor(deps.AccountUC))
	users.Get("/", accountHandler.List)
	users.Get("/me", accountHandler.Me)

	// Empleados: rutas fijas antes de /:id
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC, deps.RosterUC)
	employees := users.Group("/employees")
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/report", RequireCapability(entity.CapViewReports), employeeHandler.Report)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)
	employees.Patch("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	users.Get("/:id", accountHandler.GetByID)
	users.Put("/:id", accountHandler.Update)
	users.Patch("/:id", accountHandler.Update)
	users.Delete("/:id", accountHandler.Delete)
}

// authLimiter ventana fija por IP; 429 con el cuerpo de error estándar.
func authLimiter(rl RateLimit) fiber.Handler {
	if rl.Max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	window := rl.Window
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        rl.Max,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, "THROTTLED", msgThrottled)
		},
	})
}
