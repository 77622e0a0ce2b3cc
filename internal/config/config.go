package config

import (
	"strings"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version string      `env:"APP_VERSION" envDefault:"local"`
		Env     Environment `env:"APP_ENV" envDefault:"local"`
	}

	Directory struct {
		URL          string `env:"DIRECTORY_URL" envDefault:"ldap://localhost:389"`
		BindDN       string `env:"DIRECTORY_BIND_DN"`
		BindPassword string `env:"DIRECTORY_BIND_PASSWORD"`
		BaseDN       string `env:"DIRECTORY_BASE_DN"`
		PageSize     uint32 `env:"DIRECTORY_PAGE_SIZE" envDefault:"500"`
	}

	HTTP struct {
		Enabled bool   `env:"HTTP_SERVER_ENABLED"`
		Port    string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host    string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"logonhours:logonhours"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		URL     string `env:"RABBITMQ_URL"`
		Queue   string `env:"RABBITMQ_QUEUE" envDefault:"logonhours.apply"`
	}

	Cache struct {
		Enabled      bool `env:"CACHE_ENABLED" envDefault:"true"`
		AccountsSize int  `env:"CACHE_ACCOUNTS_SIZE" envDefault:"128"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	// "user:pass,user2:pass2" pairs for the HTTP API
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
