package router

import (
	"crm-import-web/internal/config"
	"crm-import-web/internal/handler"
	"crm-import-web/internal/middleware"
	"crm-import-web/internal/repository"
	"crm-import-web/internal/service"
	"crm-import-web/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func SetupAPIRoutes(
	router fiber.Router,
	db *sqlx.DB,
	redisClient *redis.Client,
	cfg *config.Config,
) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	schemaRepo := repository.NewSchemaRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg)
	fileService := service.NewFileService()
	schemaService := service.NewSchemaService(schemaRepo, utils.GetLogger())
	mappingService := service.NewMappingService(redisClient, cfg.MappingTTL)

	// Initialize Asynq client (optional - only if Redis is available)
	var asynqClient *asynq.Client
	if redisClient != nil {
		asynqClient = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.AsynqRedisAddr,
			Password: cfg.AsynqRedisPassword,
			DB:       cfg.AsynqRedisDB,
		})
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	objectHandler := handler.NewObjectHandler(schemaRepo, schemaService, fileService)
	importHandler := handler.NewImportHandler(sessionRepo, fileService, schemaService, mappingService, asynqClient, cfg)
	mappingHandler := handler.NewMappingHandler(sessionRepo, schemaRepo, schemaService, mappingService)

	// Public routes
	auth := router.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("", middleware.AuthMiddleware(cfg))

	// Auth routes
	protected.Get("/auth/me", authHandler.Me)

	// Schema catalog routes
	objects := protected.Group("/objects")
	objects.Get("/", objectHandler.GetObjects)
	objects.Get("/:id", objectHandler.GetObject)
	objects.Post("/", middleware.AdminOnly(), objectHandler.CreateObject)
	objects.Put("/:id", middleware.AdminOnly(), objectHandler.UpdateObject)
	objects.Delete("/:id", middleware.AdminOnly(), objectHandler.DeleteObject)
	objects.Get("/:id/fields", objectHandler.GetFields)
	objects.Post("/:id/fields", middleware.AdminOnly(), objectHandler.CreateField)
	objects.Put("/:id/fields/:fieldId", middleware.AdminOnly(), objectHandler.UpdateField)
	objects.Delete("/:id/fields/:fieldId", middleware.AdminOnly(), objectHandler.DeleteField)
	objects.Get("/:id/template", objectHandler.DownloadTemplate)
	objects.Post("/:id/fields/import", middleware.AdminOnly(), objectHandler.ImportFields)

	// Import session routes
	imports := protected.Group("/imports")
	imports.Post("/", importHandler.UploadFile)
	imports.Get("/", importHandler.GetSessions)
	imports.Get("/:code", importHandler.GetSession)
	imports.Post("/:code/run", importHandler.Run)
	imports.Get("/:code/records", importHandler.GetRecords)

	// Mapping routes: the UI re-validates through these on every edit
	imports.Post("/:code/mapping/auto", mappingHandler.AutoMap)
	imports.Get("/:code/mapping", mappingHandler.GetMapping)
	imports.Put("/:code/mapping/entry", mappingHandler.UpdateEntry)
	imports.Delete("/:code/mapping", mappingHandler.ClearMapping)
}
