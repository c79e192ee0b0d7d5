package app

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apigrpc "keypadCalc/internal/api/grpc"
	"keypadCalc/internal/api/http"
	"keypadCalc/internal/infrastructure/click"
	"keypadCalc/internal/infrastructure/kafka"
	"keypadCalc/internal/infrastructure/mongo"
	"keypadCalc/internal/infrastructure/pg"
	"keypadCalc/internal/infrastructure/redis"
	"keypadCalc/internal/pkg/logger"
)

const AppName = "CALCULATOR"

// Драйверы хранилища сессий (CALCULATOR_STORE_DRIVER).
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// KeypadConfig — настройки движка. Переменные: CALCULATOR_KEYPAD_MAX_DIGITS (0 — без ограничения).
type KeypadConfig struct {
	MaxDigits int `envconfig:"MAX_DIGITS" default:"64"`
}

// SessionConfig — время жизни сессии без нажатий. Переменная: CALCULATOR_SESSION_TTL.
type SessionConfig struct {
	TTL time.Duration `envconfig:"TTL" default:"30m"`
}

// StoreConfig — где хранятся сессии. Переменная: CALCULATOR_STORE_DRIVER.
type StoreConfig struct {
	Driver string `envconfig:"DRIVER" default:"memory"`
}

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR.
type Config struct {
	Log        logger.Config     `envconfig:"LOG"`
	Server     http.ServerConfig `envconfig:"SERVER"`
	Grpc       apigrpc.Config    `envconfig:"GRPC"`
	Keypad     KeypadConfig      `envconfig:"KEYPAD"`
	Session    SessionConfig     `envconfig:"SESSION"`
	Store      StoreConfig       `envconfig:"STORE"`
	Redis      redis.Config      `envconfig:"REDIS"`
	DB         pg.Config         `envconfig:"DB"`
	Mongo      mongo.Config      `envconfig:"MONGO"`
	Kafka      kafka.Config      `envconfig:"KAFKA"`
	ClickHouse click.Config      `envconfig:"CLICKHOUSE"`
}

// envFile — путь к .env: CALCULATOR_ENV_FILE или ".env" в рабочей директории.
func envFile() string {
	if p := os.Getenv(AppName + "_ENV_FILE"); p != "" {
		return p
	}
	return ".env"
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv), затем заполняет структуру из окружения (envconfig).
// Переменные окружения важнее значений из .env.
func LoadCfg() (Config, error) {
	if err := godotenv.Load(envFile()); err != nil {
		log.Printf("config: .env не найден, используем окружение: %v", err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
