package config

import "time"

type SecurityConfig interface {
	GetTokenSecret() []byte
	GetTokenTTL() time.Duration
	GetStoreTimeout() time.Duration
}

var _ SecurityConfig = mainConfig{}

func (c mainConfig) GetTokenSecret() []byte {
	return []byte(c.env.TokenSecret)
}

// GetTokenTTL returns the fixed session token lifetime. The token is the only
// representation of a session, so this is also the maximum session length.
func (c mainConfig) GetTokenTTL() time.Duration {
	return c.env.TokenTTL
}

func (c mainConfig) GetStoreTimeout() time.Duration {
	return c.env.StoreTimeout
}
