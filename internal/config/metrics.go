package config

import (
	"errors"
	"net"
)

type MetricsConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New("metrics server port must be between 0 and 65535 (inclusive)")
	}
	if cfg.Host == "" {
		return errors.New("metrics server host cannot be empty")
	}
	if ip := net.ParseIP(cfg.Host); ip == nil {
		return errors.New("invalid metrics server host")
	}

	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}
