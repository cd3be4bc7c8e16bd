package config

import (
	"strings"
)

type EnvVars struct {
	Port           string `env:"PORT" envDefault:"8080"`
	AppName        string `env:"APP_NAME" envDefault:"Love Ludo"`
	Env            string `env:"ENV" envDefault:"DEV"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	if strings.Contains(e.Port, ":") {
		return e.Port
	}
	return ":" + e.Port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

func (e EnvVars) GetMetricsEnabled() bool {
	return e.MetricsEnabled
}
