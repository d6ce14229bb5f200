package config

import "os"

type Config struct {
	ProjectID string
	LogLevel  string
	Port      string
}

func New() *Config {
	return &Config{
		ProjectID: os.Getenv("PROJECTID"),
		LogLevel:  os.Getenv("LOGLEVEL"),
		Port:      portOrDefault(os.Getenv("PORT")),
	}
}

func portOrDefault(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}
