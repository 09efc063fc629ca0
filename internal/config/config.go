package config

type Config interface {
	EnvConfig
	ClientConfig
	FakeAPIConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetTokenFile() string
	GetLogLevel() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Client
	FakeAPI
}

func New() Config {
	return mainConfig{}
}
