package di

import (
	"fmt"

	"gorm.io/gorm"

	"taskboard/application/serviceimpl"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/infrastructure/identity"
	"taskboard/infrastructure/mailer"
	"taskboard/infrastructure/messaging"
	"taskboard/infrastructure/postgres"
	redispkg "taskboard/infrastructure/redis"
	"taskboard/interfaces/api/handlers"
	"taskboard/pkg/config"
	"taskboard/pkg/logger"
)

// Container wires the whole dependency graph explicitly. Nothing in the
// codebase reaches for ambient singletons; every component receives its
// collaborators here.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client               // nil when REDIS_URL unset
	EventPublisher *messaging.NATSEventPublisher // nil when NATS_URL unset
	Identity       ports.IdentityProvider
	Mailer         ports.Mailer

	// Repositories
	UserRepository repositories.UserRepository
	TaskRepository repositories.TaskRepository

	// Services
	UserService services.UserService
	AuthService services.AuthService
	TaskService services.TaskService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}
	if err := c.initLogger(); err != nil {
		return err
	}
	if err := c.initInfrastructure(); err != nil {
		return err
	}
	c.initRepositories()
	c.initServices()
	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	return logger.Init(logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	})
}

func (c *Container) initInfrastructure() error {
	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	})
	if err != nil {
		return err
	}
	c.DB = db

	if err := postgres.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Cache and events are optional; the API degrades gracefully without
	// them.
	if c.Config.Redis.URL != "" {
		client, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, token cache disabled", "error", err)
		} else {
			c.RedisClient = client
		}
	}

	if c.Config.NATS.URL != "" {
		publisher, err := messaging.NewNATSEventPublisher(c.Config.NATS.URL)
		if err != nil {
			logger.Warn("NATS unavailable, task events disabled", "error", err)
		} else {
			c.EventPublisher = publisher
		}
	}

	switch c.Config.Identity.Provider {
	case "firebase":
		c.Identity = identity.NewFirebaseProvider(
			c.Config.Identity.APIKey,
			c.Config.Identity.BaseURL,
			c.Config.App.FrontendURL,
			c.Config.Identity.AdminToken,
		)
	default:
		logger.Warn("Using embedded identity provider; accounts are in-memory")
		c.Identity = identity.NewEmbeddedProvider(
			c.Config.Identity.JWTSecret,
			c.Config.App.FrontendURL,
		)
	}

	c.Mailer = mailer.NewSMTPMailer(c.Config.SMTP)

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
}

func (c *Container) initServices() {
	c.UserService = serviceimpl.NewUserService(c.UserRepository)

	// Typed nils must not reach the interface fields, or the nil checks in
	// the services stop working.
	var cache ports.Cache
	if c.RedisClient != nil {
		cache = c.RedisClient
	}
	c.AuthService = serviceimpl.NewAuthService(c.Identity, c.Mailer, c.UserService, cache)

	var events ports.EventPublisher
	if c.EventPublisher != nil {
		events = c.EventPublisher
	}
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, events)
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		AuthService: c.AuthService,
		TaskService: c.TaskService,
	}
}

func (c *Container) Cleanup() error {
	if c.EventPublisher != nil {
		c.EventPublisher.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis client", "error", err)
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
