package env

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"mini_casino/internal/config"
)

const (
	httpHostEnvName = "HTTP_HOST"
	httpPortEnvName = "HTTP_PORT"

	defaultHTTPHost = "0.0.0.0"
	defaultHTTPPort = "8080"
)

type httpConfig struct {
	host string
	port string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	host := os.Getenv(httpHostEnvName)
	if len(host) == 0 {
		host = defaultHTTPHost
	}

	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		port = defaultHTTPPort
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return nil, fmt.Errorf("invalid http port %q", port)
	}

	return &httpConfig{
		host: host,
		port: port,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}
