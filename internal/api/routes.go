package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// NewAuthRateLimiter limits signup/signin attempts per client address.
func NewAuthRateLimiter(limit float64, burst int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(limit),
				Burst:     burst,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"error": "rate limiter error"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
	}
	return middleware.RateLimiterWithConfig(config)
}

// RegisterRoutes mounts the API. /api/auth/signup and /api/auth/signin bypass the
// gate; every other /api route, unknown ones included, goes through it.
func RegisterRoutes(e *echo.Echo, authHandler *AuthHandler, todoHandler *TodoHandler, gate, authLimiter echo.MiddlewareFunc) {
	e.GET("/api/health", Health)

	public := e.Group("/api/auth", authLimiter)
	public.POST("/signup", authHandler.Signup)
	public.POST("/signin", authHandler.Signin)

	protected := e.Group("/api", gate)
	protected.POST("/auth/signout", authHandler.Signout)
	protected.GET("/test", authHandler.Whoami)

	protected.GET("/todos", todoHandler.ListTodos)
	protected.POST("/todos", todoHandler.CreateTodo)
	protected.PUT("/todos/:id", todoHandler.UpdateTodo)
	protected.DELETE("/todos/:id", todoHandler.DeleteTodo)
}

func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "todo-service",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// IsAPIPath reports whether path belongs to the API rather than the static site.
func IsAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
