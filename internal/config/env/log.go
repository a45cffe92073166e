package env

import (
	"fmt"
	"os"
	"strconv"

	"mini_casino/internal/config"
)

const (
	logLevelEnvName          = "LOG_LEVEL"
	logModeEnvName           = "LOG_MODE"
	randomSeedEnvName        = "RANDOM_SEED"
	schedulerPoolSizeEnvName = "SCHEDULER_POOL_SIZE"

	defaultSchedulerPoolSize = 16
)

type logConfig struct {
	level string
	mode  string
}

func NewLogConfig() (config.LogConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}

	mode := os.Getenv(logModeEnvName)
	switch mode {
	case "":
		mode = "prod"
	case "dev", "prod":
	default:
		return nil, fmt.Errorf("invalid log mode %q", mode)
	}

	return &logConfig{level: level, mode: mode}, nil
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Mode() string {
	return cfg.mode
}

type sessionConfig struct {
	seed     uint64
	poolSize int
}

func NewSessionConfig() (config.SessionConfig, error) {
	var seed uint64
	if raw := os.Getenv(randomSeedEnvName); len(raw) != 0 {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid random seed: %w", err)
		}
		seed = parsed
	}

	poolSize := defaultSchedulerPoolSize
	if raw := os.Getenv(schedulerPoolSizeEnvName); len(raw) != 0 {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2 {
			return nil, fmt.Errorf("invalid scheduler pool size %q", raw)
		}
		poolSize = parsed
	}

	return &sessionConfig{seed: seed, poolSize: poolSize}, nil
}

func (cfg *sessionConfig) RandomSeed() uint64 {
	return cfg.seed
}

func (cfg *sessionConfig) SchedulerPoolSize() int {
	return cfg.poolSize
}
