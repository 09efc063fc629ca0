package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	baseURLVar      = "API_BASE_URL"
	tokenFileEnvVar = "TOKEN_FILE"
	logLevelEnvVar  = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Internship Portal")
}

// GetBaseURL returns the root of the internship REST API (e.g., "https://api.example.edu.gh")
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

// GetTokenFile returns where the CLI keeps the access and refresh tokens.
func (EnvVars) GetTokenFile() string {
	if file := os.Getenv(tokenFileEnvVar); file != "" {
		return file
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".internctl", "tokens.json")
	}
	return filepath.Join(home, ".internctl", "tokens.json")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
