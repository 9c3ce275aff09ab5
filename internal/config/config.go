// config предоставляет структуру конфигурации dailydash
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	DB       DBConfig      `yaml:"db"`
	News     NewsConfig    `yaml:"news"`
	Limits   LimitsConfig  `yaml:"limits"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"30s"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50080"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// NewsConfig — параметры агрегации новостей.
type NewsConfig struct {
	// APIKey — ключ стороннего top-headlines API.
	APIKey string `yaml:"api_key" env:"NEWS_API_KEY" env-required:"true"`
	// APIBaseURL — базовый адрес top-headlines API.
	APIBaseURL string `yaml:"api_base_url" env:"NEWS_API_BASE_URL" env-default:"https://newsapi.org"`
	// Country — фиксированный код страны для международных заголовков.
	Country string `yaml:"country" env:"NEWS_COUNTRY" env-default:"us"`
	// StaleAfter — окно свежести: старше него кэш считается протухшим.
	StaleAfter time.Duration `yaml:"stale_after" env:"NEWS_STALE_AFTER" env-default:"6h"`
	// FeedTimeout — таймаут одного запроса к RSS-ленте.
	FeedTimeout time.Duration `yaml:"feed_timeout" env:"NEWS_FEED_TIMEOUT" env-default:"15s"`
	// MaxConcurrentFeeds — ограничение одновременных запросов к лентам.
	MaxConcurrentFeeds int `yaml:"max_concurrent_feeds" env:"NEWS_MAX_CONCURRENT_FEEDS" env-default:"4"`
}

// LimitsConfig — серверные лимиты на выдачу.
type LimitsConfig struct {
	// Headlines — максимум новостей в одном ответе.
	Headlines int32 `yaml:"headlines" env:"HEADLINES_LIMIT" env-default:"150"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.News.APIKey == "" {
		return fmt.Errorf("news.api_key is required")
	}
	if c.News.StaleAfter <= 0 {
		return fmt.Errorf("news.stale_after must be > 0")
	}
	if c.News.FeedTimeout <= 0 {
		return fmt.Errorf("news.feed_timeout must be > 0")
	}
	if c.News.MaxConcurrentFeeds <= 0 {
		return fmt.Errorf("news.max_concurrent_feeds must be > 0")
	}
	if c.Limits.Headlines <= 0 {
		return fmt.Errorf("limits.headlines must be > 0")
	}
	return nil
}
