package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Relay    RelayConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Proxy    ProxyConfig
}

type ServerConfig struct {
	Port string
}

type LogConfig struct {
	Level string
	Dir   string
}

type DatabaseConfig struct {
	Driver   string // postgres | sqlite
	URL      string // full postgres DSN, takes precedence over the discrete fields
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Schema   string
	Path     string // sqlite file, ":memory:" allowed

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
}

type RelayConfig struct {
	Timeout      time.Duration
	MaxBodyBytes int64
	RateLimit    int // requests per minute across relay endpoints
}

type RedisConfig struct {
	URL string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type ProxyConfig struct {
	APIBase string
}

// EnvFilePath maps APP_ENV onto the dotenv file shipped for it.
func EnvFilePath(env string) string {
	switch env {
	case "staging":
		return "config/.env.staging"
	case "production":
		return "config/.env.production"
	default:
		return "config/.env.dev"
	}
}

// Load reads envPath when it exists and then builds the configuration from the
// process environment. Variables already set in the environment win over the file.
func Load(envPath string) (*Config, error) {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, err
			}
		}
	}

	port := getEnv("SERVER_PORT", "3001")

	cfg := &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port: port,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Dir:   getEnv("LOG_DIR", "logs"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			URL:             getEnv("DB_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "postman"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			Schema:          getEnv("DB_SCHEMA", "public"),
			Path:            getEnv("DB_PATH", "postman.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 2),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE", time.Minute),
		},
		Relay: RelayConfig{
			Timeout:      getEnvDuration("RELAY_TIMEOUT", 30*time.Second),
			MaxBodyBytes: int64(getEnvInt("RELAY_MAX_BODY_BYTES", 10<<20)),
			RateLimit:    getEnvInt("RELAY_RATE_LIMIT", 60),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Proxy: ProxyConfig{
			APIBase: strings.TrimRight(getEnv("PROXY_API_BASE", "http://localhost:"+port), "/"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
