// Package router wires handlers to routes.  Registration is split by
// concern: infra endpoints, the auth flow, protected resource families and
// the admin surface each get their own function.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recordhub/internal/auth"
	"github.com/iliyamo/recordhub/internal/handler"
	"github.com/iliyamo/recordhub/internal/middleware"
)

// RegisterInfra registers the unauthenticated infrastructure endpoints:
// the health check and the request-count report.
func RegisterInfra(e *echo.Echo, counter *middleware.Counter) {
	e.GET("/healthz", handler.Healthz)
	e.GET("/stats", handler.Stats(counter))
}

// RegisterAuth registers the register/login endpoints under /v1/auth and
// the /v1/me echo of the current identity.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, tokens *auth.TokenService, users middleware.UserFinder) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := e.Group("/v1")
	me.Use(middleware.Auth(tokens, users))
	me.GET("/me", a.Me)
}

// RegisterResources registers the owner-scoped record families.  Every
// route here runs behind the session resolver.
func RegisterResources(
	e *echo.Echo,
	tokens *auth.TokenService,
	users middleware.UserFinder,
	contacts *handler.ContactHandler,
	notes *handler.NoteHandler,
	applications *handler.ApplicationHandler,
	students *handler.StudentHandler,
	cart *handler.CartHandler,
) {
	g := e.Group("/v1")
	g.Use(middleware.Auth(tokens, users))

	g.POST("/contacts", contacts.Create)
	g.GET("/contacts", contacts.List)
	g.GET("/contacts/search", contacts.Search)
	g.GET("/contacts/:id", contacts.Get)
	g.PUT("/contacts/:id", contacts.Update)
	g.DELETE("/contacts/:id", contacts.Delete)

	g.POST("/notes", notes.Create)
	g.GET("/notes", notes.List)
	g.GET("/notes/:id", notes.Get)
	g.PUT("/notes/:id", notes.Update)
	g.DELETE("/notes/:id", notes.Delete)

	g.POST("/applications", applications.Create)
	g.GET("/applications", applications.List)
	g.GET("/applications/search", applications.Search)
	g.GET("/applications/:id", applications.Get)
	g.PUT("/applications/:id", applications.Update)
	g.DELETE("/applications/:id", applications.Delete)

	g.POST("/students", students.Create)
	g.GET("/students", students.List)
	g.GET("/students/:id", students.Get)
	g.PUT("/students/:id", students.Update)
	g.DELETE("/students/:id", students.Delete)

	g.GET("/cart", cart.Get)
	g.POST("/cart/add", cart.Add)
	g.DELETE("/cart/item/:id", cart.RemoveItem)
	g.DELETE("/cart/clear", cart.Clear)
	g.POST("/cart/checkout", cart.Checkout)
}

// RegisterProducts registers the catalogue.  Reads are public; mutations
// require an authenticated admin.
func RegisterProducts(e *echo.Echo, tokens *auth.TokenService, users middleware.UserFinder, products *handler.ProductHandler) {
	e.GET("/v1/products", products.List)
	e.GET("/v1/products/:id", products.Get)

	g := e.Group("/v1/products")
	g.Use(middleware.Auth(tokens, users))
	g.Use(middleware.RequireAdmin())
	g.POST("", products.Create)
	g.PUT("/:id", products.Update)
	g.DELETE("/:id", products.Delete)
}

// RegisterAdmin registers the user administration and stats endpoints.
func RegisterAdmin(e *echo.Echo, tokens *auth.TokenService, users middleware.UserFinder, admin *handler.AdminHandler) {
	g := e.Group("/v1/admin")
	g.Use(middleware.Auth(tokens, users))
	g.Use(middleware.RequireAdmin())
	g.GET("/users", admin.ListUsers)
	g.GET("/users/:id", admin.GetUser)
	g.DELETE("/users/:id", admin.DeleteUser)
	g.GET("/stats", admin.Stats)
}
