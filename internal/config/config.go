package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	ErrInvalidLength  = errors.New("permutation length must not be negative")
	ErrInvalidCount   = errors.New("permutation count must not be negative")
	ErrInvalidHistory = errors.New("scoreboard history must be positive")
)

type Config struct {
	LogLevel     string       `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Permutations Permutations `yaml:"permutations"`
	Scoreboard   Scoreboard   `yaml:"scoreboard"`
	Redis        Redis        `yaml:"redis"`
}

type Permutations struct {
	Length int `yaml:"length" env:"PERMUTATIONS_LENGTH" env-default:"6"`
	Count  int `yaml:"count" env:"PERMUTATIONS_COUNT" env-default:"12"`
}

type Scoreboard struct {
	Enabled bool  `yaml:"enabled" env:"SCOREBOARD_ENABLED" env-default:"false"`
	History int64 `yaml:"history" env:"SCOREBOARD_HISTORY" env-default:"100"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load configuration from the yml file at path, or from the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Permutations.Length < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, that.Permutations.Length)
	}

	if that.Permutations.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, that.Permutations.Count)
	}

	if that.Scoreboard.Enabled && that.Scoreboard.History < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidHistory, that.Scoreboard.History)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
