package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIPResolver_Resolve(t *testing.T) {
	t.Parallel()

	resolver, err := NewClientIPResolver([]string{"10.0.0.0/8", "192.168.1.1"})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	tests := []struct {
		name       string
		resolver   *ClientIPResolver
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{name: "untrusted peer ignores forwarded header", resolver: resolver, remoteAddr: "203.0.113.9:5000", forwarded: "198.51.100.1", want: "203.0.113.9"},
		{name: "nil resolver trusts nobody", resolver: nil, remoteAddr: "10.1.1.1:5000", forwarded: "198.51.100.1", want: "10.1.1.1"},
		{name: "trusted peer uses nearest untrusted hop", resolver: resolver, remoteAddr: "10.1.1.1:5000", forwarded: "198.51.100.7, 198.51.100.1, 10.2.2.2", want: "198.51.100.1"},
		{name: "trusted single address", resolver: resolver, remoteAddr: "192.168.1.1:80", forwarded: "198.51.100.3", want: "198.51.100.3"},
		{name: "trusted peer falls back to real ip", resolver: resolver, remoteAddr: "10.1.1.1:5000", realIP: "198.51.100.4", want: "198.51.100.4"},
		{name: "trusted peer without headers", resolver: resolver, remoteAddr: "10.1.1.1:5000", want: "10.1.1.1"},
		{name: "unparsable peer", resolver: resolver, remoteAddr: "nowhere", want: "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := tt.resolver.Resolve(req); got != tt.want {
				t.Fatalf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewClientIPResolverRejectsInvalidEntries(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"10.0.0.0/99", "proxy.internal"} {
		if _, err := NewClientIPResolver([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestRateLimiterIgnoresSpoofedForwardedFor(t *testing.T) {
	t.Parallel()

	limited := NewRateLimiter(1, time.Minute, nil).Wrap(okHandler)
	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/v1/seasons/s1/fixtures/preview", nil)
		req.RemoteAddr = "203.0.113.9:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, want)
		}
	}
}

func TestRateLimiterPrunesRefilledBuckets(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(1, time.Hour, nil)
	if !limiter.limiterFor("busy").Allow() {
		t.Fatalf("expected first request to be allowed")
	}
	for i := 1; i < pruneThreshold; i++ {
		limiter.limiterFor(fmt.Sprintf("client-%d", i))
	}

	limiter.limiterFor("newcomer")
	if got := limiter.tracked(); got != 2 {
		t.Fatalf("expected only the spent bucket and the newcomer to remain, tracking %d", got)
	}
	if limiter.limiterFor("busy").Allow() {
		t.Fatalf("spent bucket must survive pruning")
	}
}
