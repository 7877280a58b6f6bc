package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps persistent flag names to the viper keys they override.
var flagKeys = map[string]string{
	"api-key":       KeyAPIKey,
	"base-url":      KeyBaseURL,
	"log-level":     KeyLogLevel,
	"transport":     KeyTransport,
	"host":          KeyHTTPHost,
	"port":          KeyHTTPPort,
	"endpoint-path": KeyHTTPEndpointPath,
}

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		flags := root.PersistentFlags()
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				_ = viper.BindPFlag(key, f)
			}
		}
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyAPIKey, "")
	viper.SetDefault(KeyBaseURL, DefaultBaseURL)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyTransport, TransportStdio)
	viper.SetDefault(KeyHTTPHost, "0.0.0.0")
	viper.SetDefault(KeyHTTPPort, 8000)
	viper.SetDefault(KeyHTTPEndpointPath, "/mcp")
}

func APIKey() string           { return viper.GetString(KeyAPIKey) }
func BaseURL() string          { return viper.GetString(KeyBaseURL) }
func LogLevel() string         { return viper.GetString(KeyLogLevel) }
func Transport() string        { return viper.GetString(KeyTransport) }
func HTTPHost() string         { return viper.GetString(KeyHTTPHost) }
func HTTPPort() int            { return viper.GetInt(KeyHTTPPort) }
func HTTPEndpointPath() string { return viper.GetString(KeyHTTPEndpointPath) }
