package claude

// Config carries the endpoint and credential for a Client. The base URL is
// injectable so tests can point the client at a stub server.
type Config struct {
	baseURL string
	apiKey  string
}

func NewConfig(baseURL, apiKey string) *Config {
	return &Config{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}
