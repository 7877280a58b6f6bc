package config

const (
	KeyAPIKey           = "aitable_api_key"
	KeyBaseURL          = "aitable_base_url"
	KeyLogLevel         = "log_level"
	KeyTransport        = "transport"
	KeyHTTPHost         = "http_host"
	KeyHTTPPort         = "http_port"
	KeyHTTPEndpointPath = "http_endpoint_path"
)

const (
	DefaultBaseURL = "https://api.aitable.ai"

	TransportStdio = "stdio"
	TransportHTTP  = "http"
)
