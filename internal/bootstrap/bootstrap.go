package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/alumnihub/alumnihub/internal/app/controllers"
	appMigrations "github.com/alumnihub/alumnihub/internal/app/migrations"
	appRepos "github.com/alumnihub/alumnihub/internal/app/repositories"
	appRoutes "github.com/alumnihub/alumnihub/internal/app/routes"
	appServices "github.com/alumnihub/alumnihub/internal/app/services"
	"github.com/alumnihub/alumnihub/internal/config"
	"github.com/alumnihub/alumnihub/internal/db"
	appMiddleware "github.com/alumnihub/alumnihub/internal/middleware"
	pkgAuth "github.com/alumnihub/alumnihub/internal/pkg/auth"
	"github.com/alumnihub/alumnihub/internal/pkg/helpers"
	"github.com/alumnihub/alumnihub/internal/pkg/logger"
	"github.com/alumnihub/alumnihub/internal/pkg/mediastore"
	"github.com/alumnihub/alumnihub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services        *appServices.Services
	AuthController  *appControllers.AuthController
	UserController  *appControllers.UserController
	StoryController *appControllers.StoryController
	EventController *appControllers.EventController
	AuthMiddleware  *appMiddleware.AuthMiddleware
	Repos           *appRepos.Repositories
	JWTService      *pkgAuth.JWTService
	MediaStore      mediastore.Store
	Logger          zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:      logLevel,
		Pretty:     prettyLog,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Seeding is best effort; a partial seed should not stop startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	media, err := setupMediaStore(cfg, dbPool, lgr)
	if err != nil {
		return nil, err
	}
	deps.MediaStore = media

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 720*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.MediaStore, deps.JWTService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.UserController = appControllers.NewUserController(
		deps.Services.UserService,
		deps.Services.StoryService,
		deps.Services.EventService,
	)
	deps.StoryController = appControllers.NewStoryController(deps.Services.StoryService)
	deps.EventController = appControllers.NewEventController(deps.Services.EventService)

	return deps, nil
}

// setupMediaStore selects the configured media backend
func setupMediaStore(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (mediastore.Store, error) {
	switch cfg.Media.Backend {
	case "minio":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := mediastore.NewMinioStore(ctx, dbPool, mediastore.MinioConfig{
			Endpoint:  cfg.Media.Minio.Endpoint,
			AccessKey: cfg.Media.Minio.AccessKey,
			SecretKey: cfg.Media.Minio.SecretKey,
			Bucket:    cfg.Media.Minio.Bucket,
			UseSSL:    cfg.Media.Minio.UseSSL,
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to initialize MinIO media store")
			return nil, fmt.Errorf("failed to initialize minio media store: %w", err)
		}
		lgr.Info().Str("bucket", cfg.Media.Minio.Bucket).Msg("MinIO media store configured")
		return store, nil
	default:
		lgr.Info().Msg("Postgres media store configured")
		return mediastore.NewPostgresStore(dbPool), nil
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	origins := cfg.AllowedOriginList()
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.StoryController,
		deps.EventController,
		deps.AuthMiddleware,
	)

	return router
}
