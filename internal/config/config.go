package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type API struct {
	BaseURL string        `yaml:"API_BASE_URL" env:"API_BASE_URL" env-default:"http://localhost:8080/api"`
	Timeout time.Duration `yaml:"API_TIMEOUT" env:"API_TIMEOUT" env-default:"15s"`
}

type Session struct {
	CookiePath string        `yaml:"COOKIE_PATH" env:"COOKIE_PATH" env-default:"~/.storefront/token"`
	TokenTTL   time.Duration `yaml:"TOKEN_TTL" env:"TOKEN_TTL" env-default:"168h"`
}

// Ops is the local listener for /metrics and /healthz. Empty address disables it.
type Ops struct {
	Addr string `yaml:"OPS_ADDR" env:"OPS_ADDR" env-default:""`
}

type Tracing struct {
	Enabled  bool   `yaml:"TRACING_ENABLED" env:"TRACING_ENABLED" env-default:"false"`
	Endpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type Config struct {
	Env     string  `yaml:"env" env:"ENV" env-default:"dev"`
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Ops     Ops     `yaml:"ops"`
	Tracing Tracing `yaml:"tracing"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags
	}

	var cfg Config

	if configPath == "" {
		// env-only operation, the storefront runs fine without a config file
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

// TokenPath expands a leading ~ in the configured cookie path.
func (s *Session) TokenPath() string {
	if strings.HasPrefix(s.CookiePath, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(s.CookiePath, "~"))
		}
	}

	return s.CookiePath
}
