package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing

	"github.com/iliyamo/gameplay-tracker/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/gameplay-tracker/internal/middleware" // JWT gate and response cache
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check
// for load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints under /api/auth.
// None of them sit behind the JWT middleware: register and login mint
// the first token pair, refresh and logout authenticate by refresh
// token (logout also accepts a Bearer to end every session).
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterAPI registers the protected /api surface. Every route runs
// the JWT gate first; cacheMW (the per-user Redis response cache, or a
// pass-through when Redis is absent) wraps the GET endpoints after it
// so cache keys always see the authenticated user. Uploaded media is
// served statically under /uploads.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, api *handler.APIHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/api")
	g.Use(middleware.JWTAuth(jwtSecret))
	if cacheMW != nil {
		g.Use(cacheMW)
	}

	g.GET("/user", a.Me)

	g.GET("/games", api.ListGames)
	g.POST("/games", api.CreateGame)

	g.GET("/logs", api.ListLogs)
	g.POST("/logs", api.CreateLog)

	g.GET("/custom-log-types", api.ListCustomLogTypes)
	g.POST("/custom-log-types", api.CreateCustomLogType)

	g.GET("/stats", api.Stats)

	g.POST("/upload", api.Upload)
	e.Static("/uploads", api.UploadDir)
}
