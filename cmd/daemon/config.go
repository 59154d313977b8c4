package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/maplegw/go-maplegw/nxopen"
	flag "github.com/spf13/pflag"
)

type Config struct {
	LogLevel string `koanf:"log_level"`

	// ApiKey is the NXOpen API key, NXOPEN_API_KEY takes precedence when set.
	ApiKey string `koanf:"api_key"`

	IdentityTTL     time.Duration `koanf:"identity_ttl"`
	JanitorInterval time.Duration `koanf:"janitor_interval"`

	Server struct {
		Address     string `koanf:"address"`
		Port        int    `koanf:"port"`
		AllowOrigin string `koanf:"allow_origin"`
		CertFile    string `koanf:"cert_file"`
		KeyFile     string `koanf:"key_file"`
	} `koanf:"server"`

	Upstream struct {
		BaseUrl       string        `koanf:"base_url"`
		Timeout       time.Duration `koanf:"timeout"`
		Retries       int           `koanf:"retries"`
		RetryInterval time.Duration `koanf:"retry_interval"`
	} `koanf:"upstream"`
}

type envConfig struct {
	ApiKey string `env:"NXOPEN_API_KEY"`
}

func defaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"log_level":               "info",
		"identity_ttl":            time.Duration(0),
		"janitor_interval":        time.Minute,
		"server.address":          "",
		"server.port":             3678,
		"server.allow_origin":     "",
		"upstream.base_url":       nxopen.DefaultBaseUrl,
		"upstream.timeout":        10 * time.Second,
		"upstream.retries":        0,
		"upstream.retry_interval": 250 * time.Millisecond,
	}
}

func loadConfig(args []string) (*Config, error) {
	f := flag.NewFlagSet("go-maplegw", flag.ContinueOnError)
	configPath := f.String("config", "config.yml", "path to the configuration file")
	f.String("log_level", "info", "log level (trace, debug, info, warn, error)")
	f.String("server.address", "", "address the api server listens on")
	f.Int("server.port", 3678, "port the api server listens on")
	f.String("upstream.base_url", nxopen.DefaultBaseUrl, "base url of the NXOpen API")
	f.Int("upstream.retries", 0, "retries after an upstream transport failure")
	f.Duration("identity_ttl", 0, "how long a resolved identity is kept, 0 keeps it forever")
	if err := f.Parse(args); err != nil {
		return nil, fmt.Errorf("failed parsing command line: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultConfig(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed loading default configuration: %w", err)
	}

	if err := k.Load(file.Provider(*configPath), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed reading configuration file %s: %w", *configPath, err)
		}
	}

	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed loading command line configuration: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed unmarshalling configuration: %w", err)
	}

	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return nil, fmt.Errorf("failed parsing environment: %w", err)
	} else if len(envCfg.ApiKey) > 0 {
		cfg.ApiKey = envCfg.ApiKey
	}

	if len(cfg.ApiKey) == 0 {
		return nil, fmt.Errorf("missing api key, set api_key or NXOPEN_API_KEY")
	} else if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	} else if cfg.IdentityTTL < 0 {
		return nil, fmt.Errorf("invalid identity ttl: %s", cfg.IdentityTTL)
	}

	return &cfg, nil
}

// checkReadable fails early when a configured file cannot be accessed.
func checkReadable(path string) error {
	if len(path) == 0 {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	return nil
}
