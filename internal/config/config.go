package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config — корневая структура конфигурации сервера.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	World    WorldConfig    `yaml:"world"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Audio    AudioConfig    `yaml:"audio"`
	Auth     AuthConfig     `yaml:"auth"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

type WorldConfig struct {
	Seed       int64 `yaml:"seed"`
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	TickMillis int   `yaml:"tick_millis"`
}

type EventBusConfig struct {
	URL       string `yaml:"url"` // пусто — in-memory шина
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"` // base64, не меньше 32 байт
}

// GetJWTSecret возвращает секрет подписи JWT с приоритетом config -> env.
// Пустая строка — сервер работает на эфемерном случайном секрете.
func (a *AuthConfig) GetJWTSecret() string {
	if a.JWTSecret != "" {
		return a.JWTSecret
	}
	return os.Getenv("DIG_JWT_SECRET")
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "DIG_REST_PORT", 8088)
}

// GetSeed возвращает сид генерации мира (0 в конфиге — дефолтный сид)
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("DIG_WORLD_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 48
}

// GetWidth возвращает ширину мира в тайлах
func (w *WorldConfig) GetWidth() int {
	if w.Width > 0 {
		return w.Width
	}
	return 64
}

// GetHeight возвращает глубину мира в тайлах
func (w *WorldConfig) GetHeight() int {
	if w.Height > 0 {
		return w.Height
	}
	return 128
}

// GetTickMillis возвращает период тика симуляции в миллисекундах
func (w *WorldConfig) GetTickMillis() int {
	if w.TickMillis > 0 {
		return w.TickMillis
	}
	return 100
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV DIG_CONFIG; без файла
// возвращается нулевая конфигурация — геттеры подставят дефолты.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("DIG_CONFIG")
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
