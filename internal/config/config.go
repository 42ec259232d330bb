package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is populated from the process environment.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	PGHost     string `env:"PG_HOST" envDefault:"localhost"`
	PGPort     string `env:"PG_PORT" envDefault:"5432"`
	PGUser     string `env:"PG_USER"`
	PGPassword string `env:"PG_PASSWORD"`
	PGDB       string `env:"PG_DB" envDefault:"partyfinder"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"partyfinder.db"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieSecure  bool          `env:"COOKIE_SECURE" envDefault:"false"`

	Discord DiscordConfig `envPrefix:"DISCORD_"`

	// SeedAllowList holds the Discord ids allowed to hit /seed/*.
	SeedAllowList   []string `env:"SEED_ALLOW_LIST" envSeparator:","`
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// SupportedLanguages are BCP 47 tags accepted by /change-language.
	SupportedLanguages []string `env:"SUPPORTED_LANGUAGES" envSeparator:"," envDefault:"en,ko"`

	ExpirySweepInterval time.Duration `env:"EXPIRY_SWEEP_INTERVAL" envDefault:"5m"`

	Limits CharacterLimits `envPrefix:"CHARACTER_"`
}

type DiscordConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/discord/redirect"`
}

// CharacterLimits are the minimums enforced on character payloads.
type CharacterLimits struct {
	MinLevel          int     `env:"MIN_LEVEL" envDefault:"1"`
	MinItemLevel      float64 `env:"MIN_ITEM_LEVEL" envDefault:"0"`
	MinRosterLevel    int     `env:"MIN_ROSTER_LEVEL" envDefault:"1"`
	MinStat           int     `env:"MIN_STAT" envDefault:"0"`
	MaxEngravingSlots int     `env:"MAX_ENGRAVING_SLOTS" envDefault:"6"`
}

// DefaultLimits matches the envDefault tags of CharacterLimits.
func DefaultLimits() CharacterLimits {
	return CharacterLimits{
		MinLevel:          1,
		MinItemLevel:      0,
		MinRosterLevel:    1,
		MinStat:           0,
		MaxEngravingSlots: 6,
	}
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return &cfg, nil
}

// PostgresDSN builds a URL DSN with the credentials escaped.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PGUser, c.PGPassword),
		Host:     net.JoinHostPort(c.PGHost, c.PGPort),
		Path:     "/" + c.PGDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
