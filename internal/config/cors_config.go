package config

type CorsConfig interface {
	GetAllowedOrigin() string
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

var _ CorsConfig = mainConfig{}

// The client is a SPA served from a different origin than the gateway, so
// every response carries the same permissive CORS headers.

func (mainConfig) GetAllowedOrigin() string {
	return "*"
}

func (mainConfig) GetAllowedMethods() string {
	return "GET, POST, OPTIONS"
}

func (mainConfig) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
