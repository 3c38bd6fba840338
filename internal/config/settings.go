package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds the values that differ between deployments. Everything else lives in
// the constant block.
type Settings struct {
	ListenAddr       string
	StoreBackend     string
	RedisAddr        string
	RedisPassword    string
	KafkaBrokers     []string
	KafkaActionTopic string
	LogLevel         slog.Level
	IsProd           bool
	MCPEnabled       bool
}

// Load reads an optional .env file and then the process environment.
func Load() Settings {
	_ = godotenv.Load()

	return Settings{
		ListenAddr:       getEnv("LISTEN_ADDR", ServerListenAddr),
		StoreBackend:     strings.ToLower(getEnv("STORE_BACKEND", StoreBackendRedis)),
		RedisAddr:        getEnv("REDIS_ADDR", RedisAddr),
		RedisPassword:    getEnv("REDIS_PASSWORD", RedisPassword),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaActionTopic: getEnv("KAFKA_ACTION_TOPIC", KafkaActionTopic),
		LogLevel:         parseLevel(os.Getenv("LOG_LEVEL")),
		IsProd:           getEnvAsBool("IS_PROD", IS_PROD),
		MCPEnabled:       getEnvAsBool("MCP_ENABLED", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		if IS_PROD {
			return LOG_LEVEL_PROD
		}
		return slog.LevelDebug
	}
}
