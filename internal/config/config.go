package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPHost        string
	HTTPPort        int
	DataDir         string
	ShutdownTimeout time.Duration
	LogLevel        string
}

func (c Config) HTTPAddr() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}

func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLINICBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("http.addr", "")
	v.SetDefault("data.dir", "data")
	v.SetDefault("shutdown.timeout", "10s")
	v.SetDefault("log.level", "info")

	_ = v.BindEnv("http.host", "CLINICBOOK_HTTP_HOST", "HTTP_HOST")
	_ = v.BindEnv("http.port", "CLINICBOOK_HTTP_PORT", "HTTP_PORT", "PORT")
	_ = v.BindEnv("http.addr", "CLINICBOOK_HTTP_ADDR", "HTTP_ADDR")
	_ = v.BindEnv("data.dir", "CLINICBOOK_DATA_DIR", "DATA_DIR")
	_ = v.BindEnv("shutdown.timeout", "CLINICBOOK_SHUTDOWN_TIMEOUT", "SHUTDOWN_TIMEOUT")
	_ = v.BindEnv("log.level", "CLINICBOOK_LOG_LEVEL", "LOG_LEVEL")

	timeout, err := time.ParseDuration(v.GetString("shutdown.timeout"))
	if err != nil {
		return Config{}, err
	}

	if addr := strings.TrimSpace(v.GetString("http.addr")); addr != "" {
		host, portStr, err := net.SplitHostPort(addr)
		if err == nil {
			if host != "" {
				v.Set("http.host", host)
			}
			if port, err := strconv.Atoi(portStr); err == nil {
				v.Set("http.port", port)
			}
		}
	}

	return Config{
		HTTPHost:        strings.TrimSpace(v.GetString("http.host")),
		HTTPPort:        v.GetInt("http.port"),
		DataDir:         v.GetString("data.dir"),
		ShutdownTimeout: timeout,
		LogLevel:        v.GetString("log.level"),
	}, nil
}
