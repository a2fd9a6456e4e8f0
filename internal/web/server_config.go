package web

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvListenAddr = "RIBBONS_LISTEN"
	EnvDevMode    = "RIBBONS_DEV"
)

// ServerConfig holds the preview server settings.
type ServerConfig struct {
	// ListenAddr is a host:port; empty disables the server.
	ListenAddr string
	// DevMode allows cross-origin requests.
	DevMode bool
}

func (c ServerConfig) Enabled() bool { return strings.TrimSpace(c.ListenAddr) != "" }

// DefaultServerConfigFromEnv reads RIBBONS_LISTEN and RIBBONS_DEV, falling
// back to defaultListenAddr.
func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	cfg := ServerConfig{ListenAddr: defaultListenAddr}
	if v, ok := os.LookupEnv(EnvListenAddr); ok && v != "" {
		cfg.ListenAddr = v
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("invalid %s: %w", EnvDevMode, err)
		}
		cfg.DevMode = dev
	}
	return cfg, nil
}
