package router

import (
	"crm-import-web/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func Setup(app *fiber.App, db *sqlx.DB, redis *redis.Client, cfg *config.Config) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	// Web routes (HTML)
	web := app.Group("")
	setupWebRoutes(web)

	// API routes (JSON)
	api := app.Group("/api/v1")
	SetupAPIRoutes(api, db, redis, cfg)
}

func setupWebRoutes(router fiber.Router) {
	// Authentication pages
	router.Get("/login", func(c *fiber.Ctx) error {
		return c.Render("auth/login", fiber.Map{
			"Title": "Login",
		})
	})

	router.Get("/register", func(c *fiber.Ctx) error {
		return c.Render("auth/register", fiber.Map{
			"Title": "Register",
		})
	})

	// Dashboard
	router.Get("/", func(c *fiber.Ctx) error {
		return c.Render("dashboard/index", fiber.Map{
			"Title": "Dashboard",
		})
	})

	// Import session pages
	router.Get("/imports", func(c *fiber.Ctx) error {
		return c.Render("imports/index", fiber.Map{
			"Title": "Imports",
		})
	})

	router.Get("/imports/:code/mapping", func(c *fiber.Ctx) error {
		return c.Render("imports/mapping", fiber.Map{
			"Title":       "Field Mapping",
			"SessionCode": c.Params("code"),
		})
	})

	// Schema catalog pages
	router.Get("/objects", func(c *fiber.Ctx) error {
		return c.Render("master/objects", fiber.Map{
			"Title": "CRM Objects",
		})
	})

	router.Get("/objects/:id/fields", func(c *fiber.Ctx) error {
		return c.Render("master/fields", fiber.Map{
			"Title":    "Object Fields",
			"ObjectID": c.Params("id"),
		})
	})
}
