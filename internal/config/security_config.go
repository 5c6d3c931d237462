package config

import (
	"strings"
	"time"
)

// DevSessionSecret signs cookies in DEV when SESSION_SECRET is unset.
const DevSessionSecret = "imovie-dev-session-secret"

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetSessionIdleTTL() time.Duration
	GetSessionCookieMaxAge() time.Duration
	GetLoginRateLimit() float64
	GetLoginRateBurst() int
	GetTrustedProxies() []string
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSecret signs the browser session cookie. Outside DEV an unset
// secret yields nil and startup fails.
func (Security) GetSessionSecret() []byte {
	secret := GetEnv("SESSION_SECRET", "")
	if secret == "" && (EnvVars{}).GetEnv() == "DEV" {
		secret = DevSessionSecret
	}
	if secret == "" {
		return nil
	}
	return []byte(secret)
}

// GetSessionIdleTTL is how long an unused session store stays in memory.
func (Security) GetSessionIdleTTL() time.Duration {
	return getEnvDuration("SESSION_IDLE_TTL", 30*time.Minute)
}

func (Security) GetSessionCookieMaxAge() time.Duration {
	return 30 * 24 * time.Hour
}

// GetLoginRateLimit is the sustained login and register submissions per
// second allowed from one client address.
func (Security) GetLoginRateLimit() float64 {
	return getEnvFloat("LOGIN_RATE_LIMIT", 1)
}

func (Security) GetLoginRateBurst() int {
	return getEnvInt("LOGIN_RATE_BURST", 5)
}

// GetTrustedProxies lists the proxy addresses or CIDR ranges whose
// X-Forwarded-For header is believed. Empty means none are.
func (Security) GetTrustedProxies() []string {
	var proxies []string
	for _, p := range strings.Split(GetEnv("TRUSTED_PROXIES", ""), ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}
