package app

import (
	"fmt"

	"github.com/claimdesk/claimdesk/internal/config"
	"github.com/claimdesk/claimdesk/internal/db"
	"github.com/claimdesk/claimdesk/internal/repository"
	"github.com/claimdesk/claimdesk/internal/service"
	"github.com/claimdesk/claimdesk/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg           *config.Config
	DB            *sqlx.DB
	ClaimService  *service.ClaimService
	DamageService *service.DamageService
	EmailService  *service.EmailService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	claimRepository := repository.NewClaimRepository(database)
	mediaRepository := repository.NewMediaRepository(database)

	// Storage
	blobStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.NotifyEmail,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	claimService := service.NewClaimService(claimRepository, mediaRepository, blobStorage, emailService)
	damageService := service.NewDamageService(cfg.GeminiAPIKey, cfg.GeminiModel, claimRepository, mediaRepository, blobStorage)

	return &App{
		Cfg:           cfg,
		DB:            database,
		ClaimService:  claimService,
		DamageService: damageService,
		EmailService:  emailService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
