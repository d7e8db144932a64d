package config

import "fmt"

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	ProviderConfig
}

type mainConfig struct {
	env envVars
}

// New builds the process-wide configuration from the environment. It is
// called once at startup; the returned Config is never mutated afterwards.
func New() (Config, error) {
	vars, err := parseEnv()
	if err != nil {
		return nil, fmt.Errorf("[config.New] failed to parse environment: %w", err)
	}
	return mainConfig{env: vars}, nil
}
