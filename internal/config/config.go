package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongoDB  = "mongodb"
	DriverRedis    = "redis"
	DriverWAL      = "wal"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPPort string `envconfig:"APP_PORT" default:"8080"`
	Rates    RatesConfig
	Storage  StorageConfig
	DB       DBConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Admin    AdminConfig
	Log      LogConfig
}

type RatesConfig struct {
	URL             string        `envconfig:"RATES_URL" default:"https://api.exchangerate-api.com/v4/latest/USD"`
	NamesURL        string        `envconfig:"NAMES_URL" default:"https://openexchangerates.org/api/currencies.json"`
	Timeout         time.Duration `envconfig:"RATES_TIMEOUT" default:"10s"`
	MaxAge          time.Duration `envconfig:"RATES_MAX_AGE" default:"24h"`
	RefreshInterval time.Duration `envconfig:"RATES_REFRESH_INTERVAL" default:"1h"`
	RetryAttempts   int           `envconfig:"RATES_RETRY_ATTEMPTS" default:"1"`
	RetryDelay      time.Duration `envconfig:"RATES_RETRY_DELAY" default:"1s"`
	DefaultFrom     string        `envconfig:"DEFAULT_FROM" default:"USD"`
	DefaultTo       string        `envconfig:"DEFAULT_TO" default:"EUR"`
}

type StorageConfig struct {
	Driver     string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	Key        string `envconfig:"STORAGE_KEY" default:"exchange_rates"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"rates.db"`
	WALDir     string `envconfig:"WAL_DIR" default:"rates_wal"`
}

type DBConfig struct {
	Host     string `envconfig:"POSTGRES_HOST"     default:"localhost"`
	Port     string `envconfig:"POSTGRES_PORT"     default:"5432"`
	User     string `envconfig:"POSTGRES_USER"     default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD"`
	DBName   string `envconfig:"POSTGRES_DB"       default:"rates"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE"  default:"disable"`
}

type MongoConfig struct {
	URI        string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database   string        `envconfig:"MONGO_DATABASE" default:"rates"`
	Collection string        `envconfig:"MONGO_COLLECTION" default:"kv_store"`
	Timeout    time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"currency-converter:"`
}

type KafkaConfig struct {
	Brokers   []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	Topic     string   `envconfig:"KAFKA_TOPIC" default:"rates-refreshed"`
	Enabled   bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	QueueSize int      `envconfig:"KAFKA_QUEUE_SIZE" default:"100"`
	// Consume принимает snapshot, обновлённые другими экземплярами
	Consume bool   `envconfig:"KAFKA_CONSUME_ENABLED" default:"false"`
	GroupID string `envconfig:"KAFKA_GROUP_ID"`
}

type AdminConfig struct {
	JWTSecret string `envconfig:"ADMIN_JWT_SECRET"`
}

type LogConfig struct {
	File  string `envconfig:"LOG_FILE" default:"rates.log"`
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func NewConfig() (*Config, error) {
	envFile := "config.env"

	if err := godotenv.Load(envFile); err != nil {
		log.Printf("warning: не удалось загрузить файл %s, используются только системные переменные окружения: %v", envFile, err)
	}

	return Load()
}

// Load читает только переменные окружения, без config.env.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres, DriverMongoDB, DriverRedis, DriverWAL, DriverMemory:
	default:
		return fmt.Errorf("неизвестный STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Rates.URL == "" {
		return fmt.Errorf("RATES_URL не может быть пустым")
	}
	if c.Rates.MaxAge <= 0 {
		return fmt.Errorf("RATES_MAX_AGE должен быть положительным, получено %s", c.Rates.MaxAge)
	}
	if c.Rates.RetryAttempts < 1 {
		c.Rates.RetryAttempts = 1
	}

	if c.Kafka.Consume && c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "currency-converter-" + uuid.NewString()
	}

	c.Rates.DefaultFrom = strings.ToUpper(c.Rates.DefaultFrom)
	c.Rates.DefaultTo = strings.ToUpper(c.Rates.DefaultTo)

	return nil
}

func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func (d *DBConfig) MigrationURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}
