package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envVars is the flat environment surface of the service. Everything the
// gateway needs is provisioned out-of-band: the token signing secret, the
// per-provider API keys, and the SQLite path.
type envVars struct {
	Port         string `env:"PORT" envDefault:"8080"`
	AppName      string `env:"APP_NAME" envDefault:"FairShare Gateway"`
	Env          string `env:"ENV" envDefault:"DEV"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/fairshare.db"`

	TokenSecret string        `env:"TOKEN_SECRET,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	StoreTimeout    time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"90s"`

	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	GeminiEndpoint string `env:"GEMINI_ENDPOINT" envDefault:"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"`
	GeminiModel    string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAIEndpoint string `env:"OPENAI_ENDPOINT" envDefault:"https://api.openai.com/v1/chat/completions"`
	OpenAIModel    string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

	DeepSeekAPIKey   string `env:"DEEPSEEK_API_KEY"`
	DeepSeekEndpoint string `env:"DEEPSEEK_ENDPOINT" envDefault:"https://api.deepseek.com/chat/completions"`
	DeepSeekModel    string `env:"DEEPSEEK_MODEL" envDefault:"deepseek-chat"`

	GrokAPIKey   string `env:"GROK_API_KEY"`
	GrokEndpoint string `env:"GROK_ENDPOINT" envDefault:"https://api.x.ai/v1/chat/completions"`
	GrokModel    string `env:"GROK_MODEL" envDefault:"grok-beta"`
}

func parseEnv() (envVars, error) {
	var vars envVars
	if err := env.Parse(&vars); err != nil {
		return envVars{}, err
	}
	return vars, nil
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDatabasePath() string
}

var _ EnvConfig = mainConfig{}

func (c mainConfig) GetPort() string {
	port := c.env.Port
	if len(port) > 0 && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (c mainConfig) GetAppName() string {
	return c.env.AppName
}

func (c mainConfig) GetEnv() string {
	return c.env.Env
}

func (c mainConfig) GetDatabasePath() string {
	return c.env.DatabasePath
}
