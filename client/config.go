package client

import (
	"errors"
	"flag"
	"io"
	"strings"
)

const DefaultServer = "ws://localhost:8080/play"

// Config is what the desktop client needs to reach a room.
type Config struct {
	Server   string
	Create   bool
	Join     string
	LogLevel string
}

var ErrConflictingMode = errors.New("use either -create or -join, not both")

// ParseFlags reads the client command line. getenv supplies the
// HEROGRID_SERVER and HEROGRID_LOG_LEVEL fallbacks. Without -join the
// client creates a room.
func ParseFlags(args []string, getenv func(string) string) (Config, error) {
	server := DefaultServer
	if v := getenv("HEROGRID_SERVER"); v != "" {
		server = v
	}
	level := "info"
	if v := getenv("HEROGRID_LOG_LEVEL"); v != "" {
		level = v
	}

	var cfg Config
	fs := flag.NewFlagSet("herogrid", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Server, "server", server, "relay websocket url")
	fs.BoolVar(&cfg.Create, "create", false, "create a new room")
	fs.StringVar(&cfg.Join, "join", "", "join the room with this code")
	fs.StringVar(&cfg.LogLevel, "log-level", level, "log level")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Join = strings.ToUpper(strings.TrimSpace(cfg.Join))
	if cfg.Create && cfg.Join != "" {
		return Config{}, ErrConflictingMode
	}
	if cfg.Join == "" {
		cfg.Create = true
	}
	return cfg, nil
}
