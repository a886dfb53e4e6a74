package config

import "time"

// Config holds application configuration.
type Config struct {
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	APIURL      string        `env:"API_URL" envDefault:"http://localhost:5000/api"`
	AuthScheme  string        `env:"AUTH_SCHEME" envDefault:"raw"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	TokenPath   string        `env:"TOKEN_PATH" envDefault:"crm-console.db"`
	DatabaseURL string        `env:"DATABASE_URL"`

	HTTP     HTTP
	Catalog  Catalog
	History  History
	RabbitMQ RabbitMQ
}

// HTTP holds local API configuration.
type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Catalog holds products view configuration.
type Catalog struct {
	PageSize int           `env:"CATALOG_PAGE_SIZE" envDefault:"12"`
	Debounce time.Duration `env:"CATALOG_DEBOUNCE" envDefault:"400ms"`
}

// History holds stats history configuration. History is kept only when DATABASE_URL is set.
type History struct {
	Months    int           `env:"CHART_MONTHS" envDefault:"7"`
	Limit     int           `env:"HISTORY_LIMIT" envDefault:"30"`
	Retention time.Duration `env:"HISTORY_RETENTION" envDefault:"720h"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"crm.events"`
}
