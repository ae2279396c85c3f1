package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	BackendSnapshot = "snapshot"
	BackendPostgres = "postgres"

	DefaultBlockSize = 20
)

type Config struct {
	ServiceHost string
	ServicePort int

	// Rows per block. The page and gridcli derive page offsets from it,
	// so it must match the server's default search size.
	BlockSize int

	LogLevel string

	// Search backend configuration
	SearchBackend string
	DatasetPath   string

	// Redis Configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MinIO Configuration
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	DatasetObject  string

	ShutdownTimeout time.Duration
}

func NewConfig() (*Config, error) {
	var err error

	// Загружаем .env файл
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")

	viper.SetDefault("ServiceHost", "0.0.0.0")
	viper.SetDefault("ServicePort", 8080)
	viper.SetDefault("BlockSize", DefaultBlockSize)
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("ShutdownTimeout", 10*time.Second)

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	viper.WatchConfig()

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.BlockSize <= 0 {
		log.Warnf("invalid BlockSize %d, falling back to %d", cfg.BlockSize, DefaultBlockSize)
		cfg.BlockSize = DefaultBlockSize
	}

	if level := getEnv("LOG_LEVEL", cfg.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	cfg.SearchBackend = getEnv("SEARCH_BACKEND", BackendSnapshot)
	cfg.DatasetPath = getEnv("DATASET_PATH", "data/mock-contacts.json")

	// Redis конфигурация из .env
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			redisDB = db
		}
	}
	cfg.RedisDB = redisDB

	// MinIO is optional; an empty endpoint disables dataset storage.
	cfg.MinioEndpoint = getEnv("MINIO_ENDPOINT", "")
	cfg.MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minio")
	cfg.MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minio124")
	cfg.MinioBucket = getEnv("MINIO_BUCKET", "contacts")
	cfg.DatasetObject = getEnv("DATASET_OBJECT", "mock-contacts.json")
	if useSSL, err := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false")); err == nil {
		cfg.MinioUseSSL = useSSL
	}

	log.Info("config parsed")

	return cfg, nil
}

// ApplyLogLevel настраивает уровень логирования logrus
func (c *Config) ApplyLogLevel() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// getEnv вспомогательная функция для получения environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
