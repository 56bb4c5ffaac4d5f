package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Notify NotifyConfig `mapstructure:"notify"`
	Digest DigestConfig `mapstructure:"digest"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the configured timezone. Calendar-day metrics (streaks,
// ISO weeks, month windows) are computed in this location.
func (c AppConfig) Location() *time.Location {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "dev")
}

type ServerConfig struct {
	HTTPAddr          string        `mapstructure:"http_addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	// CORSOrigins may call the API cross-origin with the session cookie.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	// Output lists zap sinks: stdout, stderr or file paths.
	Output []string `mapstructure:"output"`
}

type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type AuthConfig struct {
	AdminEmail    string        `mapstructure:"admin_email"`
	AdminPassword string        `mapstructure:"admin_password"`
	AdminToken    string        `mapstructure:"admin_token"`
	CookieName    string        `mapstructure:"cookie_name"`
	CookieMaxAge  time.Duration `mapstructure:"cookie_max_age"`
	CookieSecure  bool          `mapstructure:"cookie_secure"`
}

type CacheConfig struct {
	Backend       string        `mapstructure:"backend"`
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisPrefix   string        `mapstructure:"redis_prefix"`
}

type NotifyConfig struct {
	Email    EmailConfig    `mapstructure:"email"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	Timeout  time.Duration  `mapstructure:"timeout"`
}

type EmailConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIBase string `mapstructure:"api_base"`
	APIKey  string `mapstructure:"api_key"`
	From    string `mapstructure:"from"`
	To      string `mapstructure:"to"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

type WebhookConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type DigestConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

func Load(path string, envOnly bool) (Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	setDefaults(v)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.read_header_timeout", "5s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("log.output", []string{"stdout"})
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("auth.admin_email", "")
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("auth.admin_token", "")
	v.SetDefault("auth.cookie_name", "admin_token")
	v.SetDefault("auth.cookie_max_age", "168h")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "60s")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_prefix", "dinoverse:")
	v.SetDefault("notify.timeout", "10s")
	v.SetDefault("notify.email.enabled", false)
	v.SetDefault("notify.email.api_base", "https://api.resend.com")
	v.SetDefault("notify.email.api_key", "")
	v.SetDefault("notify.email.from", "")
	v.SetDefault("notify.email.to", "")
	v.SetDefault("notify.telegram.enabled", false)
	v.SetDefault("notify.telegram.bot_token", "")
	v.SetDefault("notify.telegram.chat_id", 0)
	v.SetDefault("notify.webhook.enabled", false)
	v.SetDefault("notify.webhook.url", "")
	v.SetDefault("digest.enabled", false)
	v.SetDefault("digest.schedule", "0 0 21 * * *")
}

func (c Config) Validate() error {
	if !c.App.IsDev() && strings.TrimSpace(c.Auth.AdminToken) == "" {
		return errors.New("auth.admin_token is required outside dev")
	}
	switch strings.ToLower(strings.TrimSpace(c.DB.Driver)) {
	case "postgres", "sqlite":
	default:
		return errors.New("db.driver must be postgres or sqlite")
	}
	return nil
}
