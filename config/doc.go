// Package config loads beankit application configuration.
//
// Sources, lowest to highest precedence: flag defaults, config.yml, changed
// flags, then environment variables including those loaded from .env.
// Environment variables map onto nested keys, so CONTAINER_EAGER_ORDER sets
// container.eager_order.
//
// # Usage
//
//	var cfg config.AppConfig
//	err := config.LoadConfig("beandemo", &cfg,
//	    config.WithFlags(flags, map[string]string{"container.eager_order": "eager-order"}))
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
package config
