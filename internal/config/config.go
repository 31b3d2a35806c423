package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	DiscordToken          string        `env:"DISCORD_TOKEN,required"`
	DatabasePath          string        `env:"DATABASE_PATH" envDefault:"data/catalog.db"`
	PrefixCommandPrefix   string        `env:"PREFIX_COMMAND_PREFIX" envDefault:"!"`
	ModLogsChannelID      string        `env:"MOD_LOGS_CHANNEL_ID"`
	DefaultEmbedColor     int           `env:"DEFAULT_EMBED_COLOR" envDefault:"49867"`
	CacheRefreshInterval  time.Duration `env:"CACHE_REFRESH_INTERVAL" envDefault:"5m"`
	InitSlashCommands     bool          `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	DiscordGuildBlacklist []string      `env:"DISCORD_GUILD_BLACKLIST" envSeparator:","`
}

func New() *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		log.Fatalf("[ERR] Failed to parse configuration: %v", err)
	}
	return &cfg
}
