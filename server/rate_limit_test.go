package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter_ClientIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		xff     []string
		want    string
	}{
		{name: "no proxies ignores header", remote: "203.0.113.9:4000", xff: []string{"10.0.0.1"}, want: "203.0.113.9"},
		{name: "untrusted peer ignores header", trusted: []string{"10.0.0.0/8"}, remote: "203.0.113.9:4000", xff: []string{"198.51.100.1"}, want: "203.0.113.9"},
		{name: "trusted peer uses last hop", trusted: []string{"10.0.0.2"}, remote: "10.0.0.2:4000", xff: []string{"1.2.3.4, 198.51.100.7"}, want: "198.51.100.7"},
		{name: "skips trusted hops", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.2:4000", xff: []string{"1.2.3.4, 198.51.100.7, 10.1.1.1"}, want: "198.51.100.7"},
		{name: "joins repeated headers", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.2:4000", xff: []string{"1.2.3.4", "198.51.100.8"}, want: "198.51.100.8"},
		{name: "trusted peer without header", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.2:4000", want: "10.0.0.2"},
		{name: "garbage hop falls back to peer", trusted: []string{"10.0.0.0/8"}, remote: "10.0.0.2:4000", xff: []string{"not-an-ip"}, want: "10.0.0.2"},
		{name: "invalid proxy entry is ignored", trusted: []string{"nonsense"}, remote: "10.0.0.2:4000", xff: []string{"1.2.3.4"}, want: "10.0.0.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(1, 1, tt.trusted...)
			r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
			r.RemoteAddr = tt.remote
			for _, v := range tt.xff {
				r.Header.Add("X-Forwarded-For", v)
			}
			require.Equal(t, tt.want, rl.clientIP(r))
		})
	}
}

func TestRateLimiter_SpoofedForwardedForIsStillLimited(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := rl.Middleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	limited := 0
	for i := range 20 {
		r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		r.RemoteAddr = "203.0.113.9:4000"
		r.Header.Set("X-Forwarded-For", "10.0.0."+strconv.Itoa(i))
		w := httptest.NewRecorder()
		handler(w, r)
		if w.Code == http.StatusTooManyRequests {
			limited++
		}
	}
	require.Equal(t, 19, limited)
	require.Len(t, rl.limiters, 1)
}
