package config

import (
	"strings"
	"time"
)

const (
	SnapshotBackendMemory = "memory"
	SnapshotBackendRedis  = "redis"
)

type SnapshotConfig interface {
	GetSnapshotBackend() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetSnapshotTTL() time.Duration
}

type Snapshots struct{}

var _ SnapshotConfig = Snapshots{}

func (Snapshots) GetSnapshotBackend() string {
	if strings.EqualFold(GetEnv("SNAPSHOT_BACKEND", ""), SnapshotBackendRedis) {
		return SnapshotBackendRedis
	}
	return SnapshotBackendMemory
}

func (Snapshots) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Snapshots) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Snapshots) GetRedisDB() int {
	return getEnvInt("REDIS_DB", 0)
}

// GetSnapshotTTL is how long a persisted snapshot survives without being
// rewritten. Zero keeps it forever.
func (Snapshots) GetSnapshotTTL() time.Duration {
	return getEnvDuration("SNAPSHOT_TTL", 30*24*time.Hour)
}
