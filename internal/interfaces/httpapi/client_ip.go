package httpapi

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIPResolver reads proxy headers only when the socket peer is one of
// the trusted proxies. A nil resolver trusts nobody.
type ClientIPResolver struct {
	trusted []netip.Prefix
}

// NewClientIPResolver accepts CIDRs or bare addresses.
func NewClientIPResolver(trustedProxies []string) (*ClientIPResolver, error) {
	out := &ClientIPResolver{}
	for _, raw := range trustedProxies {
		value := strings.TrimSpace(raw)
		if value == "" {
			continue
		}
		if strings.Contains(value, "/") {
			prefix, err := netip.ParsePrefix(value)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", value, err)
			}
			out.trusted = append(out.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(value)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", value, err)
		}
		addr = addr.Unmap()
		out.trusted = append(out.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func (c *ClientIPResolver) isTrusted(ip string) bool {
	if c == nil || len(c.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range c.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve walks X-Forwarded-For from the nearest hop and returns the first
// address that is not a trusted proxy.
func (c *ClientIPResolver) Resolve(r *http.Request) string {
	peer := normalizeIP(r.RemoteAddr)
	if peer == "" {
		return "unknown"
	}
	if !c.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		ip := normalizeIP(hops[i])
		if ip == "" {
			break
		}
		if !c.isTrusted(ip) {
			return ip
		}
	}
	if ip := normalizeIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return peer
}

func normalizeIP(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}

	if host, _, err := net.SplitHostPort(value); err == nil {
		value = strings.TrimSpace(host)
	}

	parsed := net.ParseIP(value)
	if parsed == nil {
		return ""
	}
	return parsed.String()
}
