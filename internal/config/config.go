package config

type Config interface {
	EnvConfig
	CorsConfig
	CatalogConfig
	SnapshotConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Catalog
	Snapshots
	Security
}

func New() Config {
	return mainConfig{}
}
