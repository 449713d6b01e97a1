package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/storefront-labs/storefront/internal/api/http/handlers"
	"github.com/storefront-labs/storefront/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Catalog  *handlers.CatalogHandler
	Products *handlers.ProductHandler
	Reviews  *handlers.ReviewHandler
	Areas    *handlers.AreaHandler
	Sessions *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Guarded areas re-evaluate the session
// token on every request.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	site := app.Group("", cfg.Sessions.Handle)

	site.Get(auth.RootPath, cfg.Catalog.Browse)
	site.Post("/products", cfg.Catalog.Create)
	site.Patch("/products/:id", cfg.Catalog.Update)

	product := site.Group("/product/:id")
	product.Get("", cfg.Products.Detail)
	product.Post("/gallery", cfg.Products.Gallery)
	product.Post("/buy", auth.RequireAuth(auth.LoginPath), cfg.Products.Buy)
	product.Get("/reviews", cfg.Reviews.List)
	product.Post("/reviews", cfg.Reviews.Submit)
	product.Post("/reviews/more", cfg.Reviews.LoadMore)

	site.Get(handlers.MediaPrefix+":attachmentId", cfg.Products.Media)

	site.Get("/session", cfg.Auth.Session)
	site.Get(auth.LoginPath, cfg.Auth.LoginForm)
	site.Post(auth.LoginPath, cfg.Auth.Login)
	site.Post("/register", cfg.Auth.Register)
	site.Post("/logout", cfg.Auth.Logout)
	site.Post("/seller/apply", auth.RequireAuth(auth.LoginPath), cfg.Auth.BecomeSeller)

	sellerRoles := append(append([]string{}, auth.SellerRoles...), auth.AdminRoles...)
	site.Get(auth.SellerPath, auth.RequireRole(sellerRoles...), cfg.Areas.Area("seller"))

	admin := site.Group(auth.AdminPath, auth.RequireRole(auth.AdminRoles...))
	admin.Get("", cfg.Areas.Area("admin"))
	admin.Get("/pending-sellers", cfg.Areas.Area("admin-pending-sellers"))
	admin.Get("/rejected-sellers", cfg.Areas.Area("admin-rejected-sellers"))

	site.Use(cfg.Areas.NotFound)
}
