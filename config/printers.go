package config

import (
	"strings"
	"time"
)

// PrintersConfig describes where the printer directory comes from and how
// printers are reached.
type PrintersConfig struct {
	// File is a YAML file with a list of {name, ip, description} entries.
	File string `env:"PRINTERS_FILE"`
	// Inline is a comma separated name=ip list merged after File.
	Inline string `env:"PRINTERS"`

	Port          int           `env:"PRINTER_PORT"           envDefault:"9100"`
	Timeout       time.Duration `env:"PRINTER_TIMEOUT"        envDefault:"5s"`
	ProbeTimeout  time.Duration `env:"PRINTER_PROBE_TIMEOUT"  envDefault:"1s"`
	ProbeInterval time.Duration `env:"PRINTER_PROBE_INTERVAL" envDefault:"30s"`
	// ProbeConcurrency caps simultaneous probes in one sweep.
	ProbeConcurrency int `env:"PRINTER_PROBE_CONCURRENCY" envDefault:"8"`
}

// Sanitize applies guardrails to printer configuration values.
func (c *PrintersConfig) Sanitize() {
	c.File = strings.TrimSpace(c.File)
	c.Inline = strings.TrimSpace(c.Inline)
	if c.Port <= 0 || c.Port > 65535 {
		c.Port = 9100
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = time.Second
	}
	if c.ProbeInterval < time.Second {
		c.ProbeInterval = 30 * time.Second
	}
	if c.ProbeConcurrency <= 0 {
		c.ProbeConcurrency = 8
	}
}

// LabelConfig controls label rendering.
type LabelConfig struct {
	// ASCIIFold strips Polish diacritics for printers without a Unicode font.
	ASCIIFold bool `env:"LABEL_ASCII_FOLD" envDefault:"false"`
}
