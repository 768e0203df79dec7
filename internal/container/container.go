package container

import (
	"studybuddy-api/internal/config"
	"studybuddy-api/internal/repository"
	"studybuddy-api/internal/service"
	"studybuddy-api/internal/service/account"
	"studybuddy-api/internal/service/google"
	"studybuddy-api/internal/service/token"
	"studybuddy-api/pkg/database"
	"studybuddy-api/pkg/logger"
	"studybuddy-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *database.PostgresDB
	RedisClient  *redis.Client
	Repositories *repository.Repositories
	Services     *service.Services
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logger.Logger, db *database.PostgresDB) (*Container, error) {
	// Redis is optional infrastructure: absence only degrades the health report.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, logger.Logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Redis client, proceeding without it")
		} else {
			redisClient = client
			logger.Info("Redis client initialized successfully")
		}
	} else {
		logger.Info("Redis URL not configured, proceeding without it")
	}

	repos := &repository.Repositories{
		Account:  repository.NewAccountRepository(db),
		Note:     repository.NewNoteRepository(db),
		UserData: repository.NewUserDataRepository(db),
	}

	services := &service.Services{
		Token:    token.NewService(cfg.SecretKey, cfg.AccessTokenTTL, logger),
		Google:   google.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, logger),
		Account:  account.NewService(repos.Account, logger),
		Note:     service.NewNoteService(repos.Note, logger),
		UserData: service.NewUserDataService(repos.UserData, logger),
	}

	return &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		RedisClient:  redisClient,
		Repositories: repos,
		Services:     services,
	}, nil
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetDB returns the database pool wrapper
func (c *Container) GetDB() *database.PostgresDB {
	return c.DB
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// GetTokenService returns the token service
func (c *Container) GetTokenService() service.TokenService {
	return c.Services.Token
}

// GetGoogleService returns the Google credential service
func (c *Container) GetGoogleService() service.GoogleService {
	return c.Services.Google
}

// GetAccountService returns the account service
func (c *Container) GetAccountService() service.AccountService {
	return c.Services.Account
}

// GetNoteService returns the note service
func (c *Container) GetNoteService() service.NoteService {
	return c.Services.Note
}

// GetUserDataService returns the user data service
func (c *Container) GetUserDataService() service.UserDataService {
	return c.Services.UserData
}
