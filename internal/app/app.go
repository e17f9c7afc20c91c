package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/config"
	"github.com/templui/goalnote/internal/db"
	"github.com/templui/goalnote/internal/metrics"
	"github.com/templui/goalnote/internal/middleware"
	"github.com/templui/goalnote/internal/repository"
	"github.com/templui/goalnote/internal/service"
	"github.com/templui/goalnote/internal/storage"
	"github.com/templui/goalnote/internal/validation"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	Storage     storage.Storage
	Metrics     *metrics.Metrics
	Validator   *validation.Validator
	AuthLimiter *middleware.RateLimiter
	AuthService *service.AuthService
	UserService *service.UserService
	GoalService *service.GoalService
	TodoService *service.TodoService
	NoteService *service.NoteService
	FileService *service.FileService

	done chan struct{}
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	todoRepository := repository.NewTodoRepository(database)
	noteRepository := repository.NewNoteRepository(database)
	fileRepository := repository.NewFileRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	authService := service.NewAuthService(userRepository, tokenService)
	userService := service.NewUserService(userRepository)
	goalService := service.NewGoalService(database, goalRepository)
	todoService := service.NewTodoService(database, todoRepository, goalRepository)
	noteService := service.NewNoteService(database, noteRepository, goalRepository, todoRepository)
	fileService := service.NewFileService(fileRepository, fileStorage, validation.AttachmentConstraints(cfg.FileMaxSize, cfg.FileAllowedTypes))

	done := make(chan struct{})

	return &App{
		Cfg:         cfg,
		DB:          database,
		Storage:     fileStorage,
		Metrics:     metrics.NewMetrics("goalnote"),
		Validator:   validation.New(),
		AuthLimiter: middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow, cfg.TrustedProxies, done),
		AuthService: authService,
		UserService: userService,
		GoalService: goalService,
		TodoService: todoService,
		NoteService: noteService,
		FileService: fileService,
		done:        done,
	}, nil
}

// Close stops background work and closes the database pool.
func (a *App) Close() error {
	select {
	case <-a.done:
	default:
		close(a.done)
	}

	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
