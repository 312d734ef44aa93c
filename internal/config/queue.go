package config

import (
	"errors"
	"time"
)

const (
	defaultQueueExchange       = "excess_rewards"
	defaultQueuePublishTimeout = 5 * time.Second
)

// QueueConfig configures the optional RabbitMQ publisher of excess reward reports.
type QueueConfig struct {
	Url            string        `mapstructure:"url"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Exchange       string        `mapstructure:"exchange"`
	PublishTimeout time.Duration `mapstructure:"publish-timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return errors.New("missing queue url")
	}
	if cfg.User == "" || cfg.Password == "" {
		return errors.New("missing queue credentials")
	}
	if cfg.Exchange == "" {
		cfg.Exchange = defaultQueueExchange
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultQueuePublishTimeout
	}

	return nil
}
