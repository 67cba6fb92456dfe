package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

type Config struct {
	LogLevel    string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string        `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Redis       Redis         `yaml:"redis"`
	MatchTTL    time.Duration `yaml:"match-ttl" env:"MATCH_TTL" env-default:"24h"`
	CORSOrigins []string      `yaml:"cors-origins" env:"CORS_ORIGINS" env-default:"http://localhost:5173"`
	StaticDir   string        `yaml:"static-dir" env:"STATIC_DIR" env-default:""`
	Client      Client        `yaml:"client"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Client configures the terminal client and where it gets its matches from.
type Client struct {
	Source  string        `yaml:"source" env:"CLIENT_SOURCE" env-default:"remote"`
	BaseURL string        `yaml:"base-url" env:"CLIENT_BASE_URL" env-default:"http://localhost:8080/api"`
	Timeout time.Duration `yaml:"timeout" env:"CLIENT_TIMEOUT" env-default:"5s"`
	LogFile string        `yaml:"log-file" env:"CLIENT_LOG_FILE" env-default:"tictactoe-client.log"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
