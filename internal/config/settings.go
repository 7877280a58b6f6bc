package config

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var endpointPathPattern = regexp.MustCompile(`^/[A-Za-z0-9/_.-]*$`)

// Settings is a point-in-time snapshot of the process configuration.
type Settings struct {
	APIKey           string
	BaseURL          string
	LogLevel         string
	Transport        string
	HTTPHost         string
	HTTPPort         int
	HTTPEndpointPath string
}

// Load reads the current viper state into Settings and validates it.
func Load() (Settings, error) {
	s := Settings{
		APIKey:           APIKey(),
		BaseURL:          strings.TrimRight(strings.TrimSpace(BaseURL()), "/"),
		LogLevel:         strings.ToLower(strings.TrimSpace(LogLevel())),
		Transport:        strings.ToLower(strings.TrimSpace(Transport())),
		HTTPHost:         HTTPHost(),
		HTTPPort:         HTTPPort(),
		HTTPEndpointPath: HTTPEndpointPath(),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// Validate checks the settings. An empty API key is accepted; requests then
// fail remotely with an authentication error.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.BaseURL, validation.Required, is.URL),
		validation.Field(&s.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&s.Transport, validation.Required, validation.In(TransportStdio, TransportHTTP)),
		validation.Field(&s.HTTPPort, validation.When(s.Transport == TransportHTTP, validation.Required, validation.Min(1), validation.Max(65535))),
		validation.Field(&s.HTTPEndpointPath, validation.When(s.Transport == TransportHTTP, validation.Required, validation.Match(endpointPathPattern))),
	)
}

// Addr returns the HTTP listen address.
func (s Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.HTTPHost, s.HTTPPort)
}
