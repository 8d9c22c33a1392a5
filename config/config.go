package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"` // CORS; в dev обычно http://localhost:3000
	StaticDir      string   `yaml:"staticDir"`      // собранный фронтенд; пусто — не раздавать
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|prod
	Service   string `yaml:"service"`   // chat-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true
}

type Hub struct {
	DefaultRoom  string `yaml:"defaultRoom"`  // комната, создаваемая на старте
	HistoryLimit int    `yaml:"historyLimit"` // 0 — журнал не ограничен
	SendBuffer   int    `yaml:"sendBuffer"`   // исходящий буфер на подключение
}

type Postgres struct {
	DSN string `yaml:"dsn"` // пусто — архив сообщений выключен
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Logging  Logging  `yaml:"logging"`
	Hub      Hub      `yaml:"hub"`
	Postgres Postgres `yaml:"postgres"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":5000"
	}
	if c.Hub.DefaultRoom == "" {
		c.Hub.DefaultRoom = "general"
	}
	if c.Hub.HistoryLimit < 0 {
		return errors.New("hub.historyLimit must be >= 0")
	}
	if c.Hub.SendBuffer <= 0 {
		c.Hub.SendBuffer = 64
	}
	// установка дефолтов, если значения не указаны
	if c.Logging.Service == "" {
		c.Logging.Service = "chat-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	return nil
}
