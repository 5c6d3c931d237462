package config

import "time"

const devCatalogURL = "http://localhost:8080"

type CatalogConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
	GetMockAPI() bool
}

type Catalog struct{}

var _ CatalogConfig = Catalog{}

// GetAPIBaseURL defaults to the local backend in DEV and the hosted one
// everywhere else.
func (Catalog) GetAPIBaseURL() string {
	def := "https://i-movie-spring.onrender.com"
	if (EnvVars{}).GetEnv() == "DEV" {
		def = devCatalogURL
	}
	return GetEnv("API_BASE_URL", def)
}

func (Catalog) GetAPITimeout() time.Duration {
	return getEnvDuration("API_TIMEOUT", 10*time.Second)
}

// GetMockAPI reports whether to serve the catalog from the in-process mock.
// Only honoured in DEV.
func (Catalog) GetMockAPI() bool {
	return getEnvBool("MOCK_API", false) && (EnvVars{}).GetEnv() == "DEV"
}
