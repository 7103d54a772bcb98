package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to. All interfaces by default.
	Addr string `env:"HTTP_ADDR" envDefault:":3001"`

	// TLSCertFile and TLSKeyFile point at the certificate served by the bridge.
	// Both are required outside development mode.
	TLSCertFile string `env:"HTTP_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"HTTP_TLS_KEY_FILE"`

	// MaxConnections caps concurrent connections. 0 means unlimited.
	MaxConnections int `env:"HTTP_MAX_CONNECTIONS" envDefault:"0"`

	// AllowedOrigin is the CORS origin returned to browsers.
	AllowedOrigin string `env:"HTTP_CORS_ALLOWED_ORIGIN" envDefault:"*"`

	// MaxBodyBytes caps a print request body.
	MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" envDefault:"1048576"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.Addr = strings.TrimSpace(h.Addr)
	if h.Addr == "" {
		h.Addr = ":3001"
	}
	h.TLSCertFile = strings.TrimSpace(h.TLSCertFile)
	h.TLSKeyFile = strings.TrimSpace(h.TLSKeyFile)
	h.MaxConnections = max(h.MaxConnections, 0)
	if h.AllowedOrigin = strings.TrimSpace(h.AllowedOrigin); h.AllowedOrigin == "" {
		h.AllowedOrigin = "*"
	}
	if h.MaxBodyBytes <= 0 {
		h.MaxBodyBytes = 1 << 20
	}
}

// TLSEnabled reports whether both certificate and key are configured.
func (h *HTTPConfig) TLSEnabled() bool {
	return h.TLSCertFile != "" && h.TLSKeyFile != ""
}
