package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/icyxonyx/Basic-CRUD/docs" // Import generated docs
	"github.com/icyxonyx/Basic-CRUD/internal/auth"
	"github.com/icyxonyx/Basic-CRUD/internal/config"
	"github.com/icyxonyx/Basic-CRUD/internal/controllers"
	"github.com/icyxonyx/Basic-CRUD/internal/database"
	"github.com/icyxonyx/Basic-CRUD/internal/middleware"
	"github.com/icyxonyx/Basic-CRUD/internal/models"
	"github.com/icyxonyx/Basic-CRUD/internal/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db              *gorm.DB
	userService     services.UserService
	accountService  services.AccountService
	tokenService    *auth.TokenService
	authController  *controllers.AuthController
	userController  *controllers.UserController
	adminController controllers.AdminController
	configuration   *config.Config
)

// @title User Accounts API
// @version 1.0
// @description Registration, login, profile editing and user administration
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

	// Initialize services and controllers
	hasher := auth.NewBcryptHasher()
	tokenService = auth.NewTokenService(configuration.JWTSecret, time.Duration(configuration.TokenTTLHours)*time.Hour)
	userService = services.NewUserService(db)
	accountService = services.NewAccountService(userService, hasher, tokenService)
	authController = controllers.NewAuthController(accountService)
	userController = controllers.NewUserController(accountService)
	adminController = controllers.NewAdminController(accountService)

	// Seed the initial admin account when the table is empty
	seedAdmin(hasher)

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
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the user store connection
func setupDatabase(conf *config.Config) {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)
}

// seedAdmin creates the initial admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// when the user table is empty. Without it a fresh deployment has no way to
// reach the admin endpoints.
func seedAdmin(hasher auth.PasswordHasher) {
	if configuration.AdminEmail == "" || configuration.AdminPassword == "" {
		log.Debug("No admin credentials configured, skipping seed")
		return
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Debug("User table not empty, skipping admin seed")
		return
	}

	hashed, err := hasher.Hash(configuration.AdminPassword)
	checkPanicErr(err)

	admin := &models.User{
		Name:     "Admin",
		Email:    configuration.AdminEmail,
		Password: hashed,
		IsAdmin:  true,
	}
	checkPanicErr(userService.CreateUser(admin))
	log.Infof("Seeded admin account %s", configuration.AdminEmail)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authController.Register)
			users.POST("/login", authController.Login)
			users.GET("/get-current-user", middleware.JWTAuth(tokenService), userController.GetCurrentUser)
		}

		profile := api.Group("/profile")
		profile.Use(middleware.JWTAuth(tokenService))
		{
			profile.POST("/update-user", userController.UpdateProfile)
		}

		// Admin routes require a valid token AND the stored isAdmin flag
		admin := api.Group("/admin")
		admin.Use(middleware.JWTAuth(tokenService), middleware.RequireAdmin(userService))
		{
			admin.GET("/get-all-users", adminController.GetAllUsers)
			admin.POST("/update-user", adminController.UpdateUser)
			admin.POST("/delete-user", adminController.DeleteUser)
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
		"service":   "basic-crud",
	})
}
