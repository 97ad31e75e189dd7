package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7777"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB   int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Game struct {
	BoardSize        int           `yaml:"board-size" env:"GAME_BOARD_SIZE" env-default:"15"`
	AIDelayMin       time.Duration `yaml:"ai-delay-min" env:"GAME_AI_DELAY_MIN" env-default:"500ms"`
	AIDelayMax       time.Duration `yaml:"ai-delay-max" env:"GAME_AI_DELAY_MAX" env-default:"1500ms"`
	TickInterval     time.Duration `yaml:"tick-interval" env:"GAME_TICK_INTERVAL" env-default:"1s"`
	LeaderboardLimit int           `yaml:"leaderboard-limit" env:"GAME_LEADERBOARD_LIMIT" env-default:"10"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file, environment variables override it.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Game.AIDelayMax < config.Game.AIDelayMin {
		return nil, fmt.Errorf("%w: ai-delay-max %s is below ai-delay-min %s",
			ErrInvalidConfig, config.Game.AIDelayMax, config.Game.AIDelayMin)
	}

	if config.Game.TickInterval <= 0 {
		return nil, fmt.Errorf("%w: tick-interval must be positive", ErrInvalidConfig)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
