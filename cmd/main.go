package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/casadocafe/cardapio-api/docs" // Import generated docs
	"github.com/casadocafe/cardapio-api/internal/auth"
	"github.com/casadocafe/cardapio-api/internal/config"
	"github.com/casadocafe/cardapio-api/internal/controllers"
	"github.com/casadocafe/cardapio-api/internal/database"
	"github.com/casadocafe/cardapio-api/internal/middleware"
	"github.com/casadocafe/cardapio-api/internal/models"
	"github.com/casadocafe/cardapio-api/internal/services"
	"github.com/casadocafe/cardapio-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config

	catalogService  services.CatalogService
	categoryService services.CategoryService
	itemService     services.ItemService
	adminService    services.AdminService

	oauthService *auth.OAuthService

	menuController     controllers.MenuController
	categoryController controllers.CategoryController
	itemController     controllers.ItemController
	adminController    controllers.AdminController
	authController     controllers.AuthController
)

// @title Cardápio API
// @version 1.0
// @description Menu management API: public menu display plus an authenticated back office
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize object storage
	store := setupObjectStore(configuration)

	// Initialize services and controllers
	catalogService = services.NewCatalogService(db)
	categoryService = services.NewCategoryService(db)
	itemService = services.NewItemService(db, store)
	adminService = services.NewAdminService(db)

	oauthService = auth.NewOAuthService(db, adminService, configuration.JWTSecret)

	menuController = controllers.NewMenuController(catalogService, store)
	categoryController = controllers.NewCategoryController(categoryService)
	itemController = controllers.NewItemController(itemService)
	adminController = controllers.NewAdminController(adminService, catalogService)
	authController = controllers.NewAuthController(adminService, configuration.JWTSecret)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, migrates the schema and
// seeds the starter menu when the database is empty
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	// Seed only if empty
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the database with the starter menu
func seedDatabase() {
	cafes := models.Category{Name: "Cafés", Slug: "cafes"}
	doces := models.Category{Name: "Doces", Slug: "doces"}
	db.Create(&cafes)
	db.Create(&doces)

	espresso := "Clássico, intenso e aromático."
	cookie := "Crocante por fora, macio por dentro."
	items := []models.MenuItem{
		{Name: "Espresso", Description: &espresso, Price: 8.0, Available: true, CategoryID: cafes.ID},
		{Name: "Cookie de chocolate", Description: &cookie, Price: 6.5, Available: true, CategoryID: doces.ID},
	}
	for _, item := range items {
		db.Create(&item)
	}
	log.Info("Database seeded successfully")
}

// setupObjectStore builds the S3-compatible client behind the image bucket
func setupObjectStore(conf *config.Config) storage.ObjectStore {
	store, err := storage.NewS3Store(context.Background(), storage.Config{
		Endpoint:      conf.StorageEndpoint,
		Region:        conf.StorageRegion,
		AccessKey:     conf.StorageAccessKey,
		SecretKey:     conf.StorageSecretKey,
		Bucket:        conf.StorageBucket,
		PublicBaseURL: conf.StorageBaseURL,
	})
	checkPanicErr(err)
	return store
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// OAuth2 token endpoint (password and client_credentials grants)
	router.POST("/oauth/token", oauthService.HandleToken)

	v1 := router.Group("/api/v1")
	{
		// Public menu, no authentication
		publicApi := v1.Group("/public")
		{
			publicApi.GET("/categories", menuController.GetCategories)
			publicApi.GET("/items", menuController.GetItems)
			publicApi.GET("/promotions", menuController.GetPromotions)
			publicApi.GET("/price-preview", menuController.PricePreview)
		}

		// Login surface: JSON login plus the first-run bootstrap
		authApi := v1.Group("/auth")
		{
			authApi.POST("/login", authController.Login)
			authApi.GET("/bootstrap", authController.BootstrapStatus)
			authApi.POST("/bootstrap", authController.Bootstrap)
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.JWTAuth([]byte(configuration.JWTSecret)))
		protectedApi.Use(middleware.RequireRole("admin"))
		{
			protectedApi.GET("/me", authController.Me)
			protectedApi.GET("/overview", adminController.Overview)

			protectedApi.GET("/categories", categoryController.List)
			protectedApi.GET("/categories/:id", categoryController.Get)
			protectedApi.POST("/categories", categoryController.Create)
			protectedApi.PUT("/categories/:id", categoryController.Update)
			protectedApi.DELETE("/categories/:id", categoryController.Delete)

			protectedApi.GET("/items", itemController.List)
			protectedApi.GET("/items/:id", itemController.Get)
			protectedApi.POST("/items", itemController.Create)
			protectedApi.PUT("/items/:id", itemController.Update)
			protectedApi.DELETE("/items/:id", itemController.Delete)
			protectedApi.PUT("/items/:id/promotion", itemController.SavePromotion)
			protectedApi.DELETE("/items/:id/promotion", itemController.RemovePromotion)

			protectedApi.GET("/admins", adminController.List)
			protectedApi.POST("/admins", adminController.Create)
			protectedApi.DELETE("/admins/:id", adminController.Delete)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "cardapio-api",
	})
}
