package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"smartlib-backend/internal/config"
	"smartlib-backend/internal/infrastructure/cache"
	"smartlib-backend/internal/infrastructure/database"
	"smartlib-backend/internal/infrastructure/email"
	"smartlib-backend/internal/infrastructure/storage"
	"smartlib-backend/pkg/jwt"
	"smartlib-backend/pkg/logger"

	bookHandler "smartlib-backend/internal/domains/book/handler"
	bookRepo "smartlib-backend/internal/domains/book/repository"
	bookService "smartlib-backend/internal/domains/book/service"
	chatGateway "smartlib-backend/internal/domains/chat/gateway"
	"smartlib-backend/internal/domains/chat/gateway/huggingface"
	chatHandler "smartlib-backend/internal/domains/chat/handler"
	chatRepo "smartlib-backend/internal/domains/chat/repository"
	chatService "smartlib-backend/internal/domains/chat/service"
	ledgerHandler "smartlib-backend/internal/domains/ledger/handler"
	ledgerJob "smartlib-backend/internal/domains/ledger/job"
	ledgerRepo "smartlib-backend/internal/domains/ledger/repository"
	ledgerService "smartlib-backend/internal/domains/ledger/service"
	userHandler "smartlib-backend/internal/domains/user/handler"
	userRepo "smartlib-backend/internal/domains/user/repository"
	userService "smartlib-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config first, then
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *cache.RedisClient
	Storage    *storage.MinIOStorage // nil when object storage is unreachable
	Mailer     email.EmailService
	JWTManager *jwt.Manager

	UserRepo   userRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	LedgerRepo ledgerRepo.RepositoryInterface
	ChatRepo   chatRepo.RepositoryInterface

	UserService   userService.ServiceInterface
	BookService   bookService.ServiceInterface
	LedgerService ledgerService.ServiceInterface
	ChatService   chatService.ServiceInterface

	UserHandler   *userHandler.UserHandler
	BookHandler   *bookHandler.Handler
	LedgerHandler *ledgerHandler.Handler
	ChatHandler   *chatHandler.ChatHandler

	DueReminderHandler *ledgerJob.DueReminderHandler
}

// NewContainer builds the full dependency graph.
// Postgres is required; Redis and MinIO failures are non-critical because the
// services they back degrade gracefully without them.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	c.initHandlers()

	log.Println("[CONTAINER] Dependency graph initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	db := database.NewPostgresDB(&c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisClient := cache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisClient.Connect(context.Background()); err != nil {
		// Redis only backs the catalog snapshot cache; the app works without it
		log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
		c.Cache = nil
	} else {
		c.Cache = redisClient
	}

	store, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		// Cover uploads will be rejected; everything else keeps working
		log.Printf("[CONTAINER] MinIO initialization failed (non-critical): %v", err)
	} else {
		c.Storage = store
	}

	c.Mailer = email.NewSMTPEmailService(c.Config.SMTP.Host, c.Config.SMTP.Port, c.Config.SMTP.From)
	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTokenExpiry)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewRepository(pool)
	c.BookRepo = bookRepo.NewRepository(pool)
	c.LedgerRepo = ledgerRepo.NewRepository(pool)
	c.ChatRepo = chatRepo.NewRepository(pool)
}

func (c *Container) initServices() error {
	c.UserService = userService.NewService(c.UserRepo, c.JWTManager)
	c.BookService = bookService.NewService(c.BookRepo, c.Cache, c.Storage)

	finePerDay, err := decimal.NewFromString(c.Config.Ledger.FinePerDay)
	if err != nil {
		return fmt.Errorf("invalid LEDGER_FINE_PER_DAY %q: %w", c.Config.Ledger.FinePerDay, err)
	}

	c.LedgerService = ledgerService.NewService(
		ledgerService.PoolRunner{Pool: c.DB.Pool},
		c.LedgerRepo,
		finePerDay,
		c.Config.Ledger.MaxListLimit,
		c.BookService, // ledger mutations invalidate the catalog snapshot
	)

	var completer chatGateway.Completer
	if c.Config.Chat.Token != "" {
		completer = huggingface.NewClient(c.Config.Chat)
		log.Printf("[CONTAINER] Chat inference enabled (model: %s)", c.Config.Chat.Model)
	} else {
		log.Println("[CONTAINER] No inference token configured, chat uses rule-based responses only")
	}
	c.ChatService = chatService.NewService(c.ChatRepo, c.BookService, completer)

	return nil
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewHandler(c.UserService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.LedgerHandler = ledgerHandler.NewHandler(c.LedgerService)
	c.ChatHandler = chatHandler.NewHandler(c.ChatService)

	c.DueReminderHandler = ledgerJob.NewDueReminderHandler(c.LedgerRepo, c.Mailer, c.Config.Ledger.ReminderWindow)
}

// Cleanup releases infrastructure resources in reverse dependency order
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Printf("[CONTAINER] Redis close failed: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("[CONTAINER] Cleanup complete")
}
