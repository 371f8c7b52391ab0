package config

import (
	"time"

	"github.com/joho/godotenv"
)

type StorageDriver string

const (
	StorageRedis  StorageDriver = "redis"
	StorageMongo  StorageDriver = "mongo"
	StorageMemory StorageDriver = "memory"
)

type CartConfig struct {
	StorageKey    string
	StorageDriver StorageDriver
}

type CatalogConfig struct {
	BaseURL string
	// Timeout bounds a single catalog request; zero disables it.
	Timeout time.Duration
}

type MongoConfig struct {
	URI                    string
	Database               string
	Collection             string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RabbitMQConfig struct {
	Enabled    bool
	URL        string
	MaxRetries int
	RetryDelay time.Duration
	Exchange   ExchangeConfig
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type HTTPConfig struct {
	Port          string
	BindInterface string
	// RateLimit is the number of cart mutations allowed per client per RateWindow.
	RateLimit  int
	RateWindow time.Duration
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	IsProduction bool
	JSON         bool
	Level        string
}

type Config struct {
	Cart     CartConfig
	Catalog  CatalogConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	HTTP     HTTPConfig
	Logger   LoggerConfig
}

func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		Cart: CartConfig{
			StorageKey:    getStringEnv("CART_STORAGE_KEY", "@RocketShoes:cart"),
			StorageDriver: StorageDriver(getStringEnv("CART_STORAGE_DRIVER", string(StorageRedis))),
		},
		Catalog: CatalogConfig{
			BaseURL: getStringEnv("CATALOG_BASE_URL", "http://localhost:3333"),
			Timeout: getDurationEnv("CATALOG_TIMEOUT", 10*time.Second),
		},
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getStringEnv("MONGO_DATABASE", "cart"),
			Collection:             getStringEnv("MONGO_COLLECTION", "snapshots"),
			Timeout:                time.Duration(getIntEnv("MONGO_TIMEOUT", 10)) * time.Second,
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 20)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 1)),
			ConnectTimeout:         time.Duration(getIntEnv("MONGO_CONNECT_TIMEOUT", 10)) * time.Second,
			ServerSelectionTimeout: time.Duration(getIntEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5)) * time.Second,
		},
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		HTTP: HTTPConfig{
			Port:          getStringEnv("HTTP_PORT", "8080"),
			BindInterface: getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
			RateLimit:     getIntEnv("HTTP_RATE_LIMIT", 60),
			RateWindow:    getDurationEnv("HTTP_RATE_WINDOW", time.Minute),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:    getBoolEnv("RABBITMQ_ENABLED", false),
			URL:        getStringEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: time.Duration(getIntEnv("RABBITMQ_RETRY_DELAY", 1)) * time.Second,
			Exchange: ExchangeConfig{
				Name:       getStringEnv("RABBITMQ_EXCHANGE_NAME", "exchange.cart"),
				Type:       getStringEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
				Durable:    getBoolEnv("RABBITMQ_EXCHANGE_DURABLE", true),
				AutoDelete: getBoolEnv("RABBITMQ_EXCHANGE_AUTO_DELETE", false),
			},
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "cart"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
			JSON:         getBoolEnv("LOG_JSON", false),
			Level:        getStringEnv("LOG_LEVEL", "DEBUG"),
		},
	}
}
