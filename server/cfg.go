package server

import (
	"time"

	"github.com/zucenko/herogrid/model"
)

type Config struct {
	Port           string
	TurnTime       time.Duration
	CodeLength     int
	SendBuffer     int
	WriteWait      time.Duration
	PongWait       time.Duration
	RequestTimeout time.Duration
	MaxMessageSize int64
}

func DefaultConfig() Config {
	return Config{
		Port:           "8080",
		TurnTime:       model.DefaultTurnTime,
		CodeLength:     6,
		SendBuffer:     16,
		WriteWait:      time.Second,
		PongWait:       60 * time.Second,
		RequestTimeout: 200 * time.Millisecond,
		MaxMessageSize: 4096,
	}
}

// PingPeriod must stay below PongWait so a healthy peer never times out.
func (c Config) PingPeriod() time.Duration {
	return c.PongWait * 9 / 10
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.TurnTime <= 0 {
		c.TurnTime = d.TurnTime
	}
	if c.CodeLength <= 0 {
		c.CodeLength = d.CodeLength
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = d.SendBuffer
	}
	if c.WriteWait <= 0 {
		c.WriteWait = d.WriteWait
	}
	if c.PongWait <= 0 {
		c.PongWait = d.PongWait
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	return c
}
