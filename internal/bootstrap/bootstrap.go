package bootstrap

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studyhub/internal/app/controllers"
	"github.com/yigit/studyhub/internal/app/gateway"
	appMigrations "github.com/yigit/studyhub/internal/app/migrations"
	appRepos "github.com/yigit/studyhub/internal/app/repositories"
	appRoutes "github.com/yigit/studyhub/internal/app/routes"
	appServices "github.com/yigit/studyhub/internal/app/services"
	"github.com/yigit/studyhub/internal/app/workspace"
	"github.com/yigit/studyhub/internal/config"
	"github.com/yigit/studyhub/internal/db"
	appMiddleware "github.com/yigit/studyhub/internal/middleware"
	pkgAuth "github.com/yigit/studyhub/internal/pkg/auth"
	"github.com/yigit/studyhub/internal/pkg/email"
	"github.com/yigit/studyhub/internal/pkg/filestorage"
	"github.com/yigit/studyhub/internal/pkg/logger"
	"github.com/yigit/studyhub/internal/pkg/viewrouter"
	"github.com/yigit/studyhub/internal/pkg/websocket"
	"github.com/yigit/studyhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Gateway        gateway.Gateway
	Registry       *workspace.Registry
	Hub            *websocket.Hub
	FileStorage    *filestorage.LocalStorage
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger

	// closers run in reverse order on shutdown.
	closers []func()
}

// Close releases everything the dependencies acquired, newest first.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

func (d *Dependencies) onClose(fn func()) {
	d.closers = append(d.closers, fn)
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.EqualFold(cfg.Logging.Format, "text")

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupGateway builds the identity backend selected by gateway.provider.
func SetupGateway(cfg *config.Config, deps *Dependencies) (gateway.Gateway, error) {
	lgr := logger.Component(deps.Logger, "gateway")

	if cfg.Gateway.Provider == config.ProviderRemote {
		lgr.Info().Str("url", cfg.Gateway.URL).Msg("Using remote identity backend")
		return gateway.NewRemote(gateway.RemoteConfig{
			URL:     cfg.Gateway.URL,
			AnonKey: cfg.Gateway.AnonKey,
			Timeout: cfg.Gateway.RequestTimeout,
			Logger:  lgr,
		}), nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	deps.onClose(database.Close)

	if cfg.Database.AutoMigrate {
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.MigratePool(database.Pool); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
	}

	var store gateway.KeyValueStore
	if cfg.Redis.Addr != "" {
		redisStore, err := db.NewRedis(cfg.Redis)
		if err != nil {
			lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
			return nil, err
		}
		deps.onClose(func() { _ = redisStore.Close() })
		store = redisStore
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Sessions stored in redis")
	} else {
		store = db.NewMemory()
		lgr.Warn().Msg("No redis address configured, sessions are kept in memory")
	}

	mailer := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	tokens := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.JWT.AccessTokenExpiration,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	return gateway.NewLocal(gateway.LocalConfig{
		Users:          appRepos.NewUserRepository(database.Pool),
		Store:          store,
		Tokens:         tokens,
		Mailer:         mailer,
		Logger:         lgr,
		SignInAttempts: cfg.Gateway.SignInAttempts,
	}), nil
}

// BuildDependencies initializes the gateway, the workspace registry, the chat
// hub, services and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	gw, err := SetupGateway(cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Gateway = gw

	fileStorageBaseURL := strings.TrimRight(cfg.Server.BaseURL, "/") + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		deps.Close()
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Hub = websocket.NewHub(lgr)
	messages := websocket.NewMessageHandler(deps.Hub, lgr)

	deps.Registry = workspace.NewRegistry(gw, seed.NewGenerator(nil, nil).Seeder(), workspace.Options{
		ToastTTL:  cfg.Notifications.ToastTTL,
		Metrics:   appMiddleware.WorkspaceMetrics{},
		OnMessage: messages.Listener(),
	}, logger.Component(lgr, "workspace"))
	messages.Attach(deps.Registry)

	unsubscribe := gw.OnAuthStateChange(deps.Registry.HandleAuthEvent)
	deps.onClose(unsubscribe)

	authService := appServices.NewAuthService(gw, deps.Registry, lgr)
	profileService := appServices.NewProfileService(gw, deps.Registry, deps.FileStorage, lgr)
	noteService := appServices.NewNoteService(deps.FileStorage, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(gw, deps.Registry)
	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(authService, lgr),
		User:       appControllers.NewUserController(profileService, lgr),
		Note:       appControllers.NewNoteController(noteService, lgr),
		Flashcard:  appControllers.NewFlashcardController(),
		Community:  appControllers.NewCommunityController(),
		Session:    appControllers.NewSessionController(),
		Infovid:    appControllers.NewInfovidController(),
		Course:     appControllers.NewCourseController(),
		Chat:       appControllers.NewChatController(),
		Activity:   appControllers.NewActivityController(viewrouter.NewNamed()),
		ChatSocket: websocket.NewHandler(deps.Hub, messages, cfg.Server.AllowedOrigins, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.Logging(lgr),
		appMiddleware.Metrics(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", appMiddleware.RequestIDHeader},
			ExposeHeaders:    []string{appMiddleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
