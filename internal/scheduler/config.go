package scheduler

import (
	"time"
)

// Config controls the periodic sync loop.
type Config struct {
	RunInterval time.Duration
	JobTimeout  time.Duration
	MaxUsers    int
}

func DefaultConfig() Config {
	return Config{
		RunInterval: 30 * time.Minute,
		JobTimeout:  10 * time.Minute,
		MaxUsers:    500,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	if c.MaxUsers <= 0 {
		c.MaxUsers = defaults.MaxUsers
	}
	return c
}
