package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	return Settings{
		BaseURL:          DefaultBaseURL,
		LogLevel:         "info",
		Transport:        TransportStdio,
		HTTPHost:         "0.0.0.0",
		HTTPPort:         8000,
		HTTPEndpointPath: "/mcp",
	}
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Settings) {}},
		{name: "empty api key allowed", mutate: func(s *Settings) { s.APIKey = "" }},
		{name: "http transport", mutate: func(s *Settings) { s.Transport = TransportHTTP }},
		{name: "missing base url", mutate: func(s *Settings) { s.BaseURL = "" }, wantErr: true},
		{name: "bad base url", mutate: func(s *Settings) { s.BaseURL = "not a url" }, wantErr: true},
		{name: "unknown transport", mutate: func(s *Settings) { s.Transport = "grpc" }, wantErr: true},
		{name: "unknown log level", mutate: func(s *Settings) { s.LogLevel = "trace" }, wantErr: true},
		{name: "port ignored for stdio", mutate: func(s *Settings) { s.HTTPPort = 0 }},
		{name: "port out of range", mutate: func(s *Settings) {
			s.Transport = TransportHTTP
			s.HTTPPort = 70000
		}, wantErr: true},
		{name: "endpoint without slash", mutate: func(s *Settings) {
			s.Transport = TransportHTTP
			s.HTTPEndpointPath = "mcp"
		}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.mutate(&s)
			err := s.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("AITABLE_API_KEY", "usk-test")
	t.Setenv("AITABLE_BASE_URL", "https://api.aitable.ai/")
	t.Setenv("LOG_LEVEL", "DEBUG")

	Init(nil)
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "usk-test", s.APIKey)
	assert.Equal(t, "https://api.aitable.ai", s.BaseURL)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, TransportStdio, s.Transport)
	assert.Equal(t, "0.0.0.0:8000", s.Addr())
}

func TestLoadWithoutAPIKey(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("AITABLE_API_KEY", "")

	Init(nil)
	s, err := Load()
	require.NoError(t, err)
	assert.Empty(t, s.APIKey)
	assert.Equal(t, DefaultBaseURL, s.BaseURL)
}
