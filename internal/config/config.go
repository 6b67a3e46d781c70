package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	DefaultRedisPort = "6379"
)

var ErrUnknownStorage = errors.New("unknown storage")

type Config struct {
	LogLevel      string        `yaml:"log-level"      env:"LOG_LEVEL"      env-default:"info"`
	HTTPPort      string        `yaml:"http-port"      env:"HTTP_PORT"      env-default:"9090"`
	SocketPort    string        `yaml:"socket-port"    env:"SOCKET_PORT"    env-default:"9091"`
	Storage       string        `yaml:"storage"        env:"STORAGE"        env-default:"memory"`
	Redis         Redis         `yaml:"redis"`
	RoundTTL      time.Duration `yaml:"round-ttl"      env:"ROUND_TTL"      env-default:"24h"`
	ComputerDelay time.Duration `yaml:"computer-delay" env:"COMPUTER_DELAY" env-default:"500ms"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file, overridden by the
// environment. Without the file only the environment and defaults are used.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	err := cleanenv.ReadConfig(path, config)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		return nil, err
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}
}

// SlogLevel maps log-level to a slog level. Unknown values mean info.
func (that *Config) SlogLevel() slog.Level {
	switch that.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
