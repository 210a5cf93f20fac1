package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const (
	defaultTokenDuration      = 30 * 24 * time.Hour
	defaultEmailTokenDuration = 15 * time.Minute
	defaultRequestTimeout     = 30 * time.Second
	defaultTokenIssuer        = "go-shop-keeper"
	defaultLoginRateLimit     = 1
	defaultLoginRateBurst     = 5
	defaultSMTPPort           = 587
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

// withDefaults appends the lowest-priority layer. Secrets and the DSN have
// no defaults.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &StructuredConfig{
		App: App{
			TokenIssuer:        defaultTokenIssuer,
			TokenDuration:      defaultTokenDuration,
			EmailTokenDuration: defaultEmailTokenDuration,
		},
		Server: Server{
			RequestTimeout: defaultRequestTimeout,
			LoginRateLimit: defaultLoginRateLimit,
			LoginRateBurst: defaultLoginRateBurst,
		},
		Mail: Mail{
			SMTPPort: defaultSMTPPort,
		},
	})
	return b
}
