package api

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lostark-hub/partyfinder/internal/common"
	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/db/repositories"
	"lostark-hub/partyfinder/internal/metrics"
	"lostark-hub/partyfinder/internal/seed"
	"lostark-hub/partyfinder/internal/services"
)

type Repositories struct {
	Users *repositories.UserRepository
	Board *repositories.PostBoardRepository
}

type Services struct {
	Cache       common.CacheInterface
	KeyStore    common.KeyStore
	Sessions    *common.SessionService
	Languages   *common.Languages
	Characters  *services.CharacterService
	Catalog     *services.CatalogService
	PartyFind   *services.PartyFindService
	DiscordAuth *services.DiscordAuthService
	Seeder      *seed.Loader
}

type Dependencies struct {
	Config   *config.Config
	SQL      *sqlx.DB
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services. redisClient may be nil, in
// which case OAuth states and revoked sessions live in process memory.
func InitDependencies(cfg *config.Config, gdb *gorm.DB, sqlDB *sqlx.DB, redisClient *redis.Client, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	repos := &Repositories{
		Users: repositories.NewUserRepository(gdb),
		Board: repositories.NewPostBoardRepository(sqlDB),
	}

	cacheSvc := common.NewCacheService(services.CatalogTTL, 2*services.CatalogTTL)
	keyStore := common.NewKeyStore(redisClient)
	catalog := services.NewCatalogService(gdb, cacheSvc)

	svcs := &Services{
		Cache:       cacheSvc,
		KeyStore:    keyStore,
		Sessions:    common.NewSessionService([]byte(cfg.SessionSecret), cfg.SessionTTL, cfg.CookieSecure, keyStore),
		Languages:   common.NewLanguages(cfg.DefaultLanguage, cfg.SupportedLanguages),
		Characters:  services.NewCharacterService(gdb, cfg.Limits),
		Catalog:     catalog,
		PartyFind:   services.NewPartyFindService(gdb, catalog),
		DiscordAuth: services.NewDiscordAuthService(cfg.Discord, keyStore, repos.Users, cfg.DefaultLanguage),
		Seeder:      seed.NewLoader(gdb),
	}

	return &Dependencies{
		Config:   cfg,
		SQL:      sqlDB,
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
