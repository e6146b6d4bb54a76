package pkg

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// dockerBridge covers the default docker bridge networks (172.16.0.0/12).
var dockerBridge = &net.IPNet{
	IP:   net.IPv4(172, 16, 0, 0),
	Mask: net.CIDRMask(12, 32),
}

// IsLocalIP reports whether the client runs on the same host or in a local container.
func IsLocalIP(ip net.IP) bool {
	return ip.IsLoopback() || dockerBridge.Contains(ip)
}

// ClientIP resolves the caller address, preferring the proxy headers.
// The first entry of X-Forwarded-For is the original client. Local callers
// resolve to "localhost" so they share one rate limit bucket.
func ClientIP(r *http.Request) (string, error) {
	addr := r.Header.Get("X-Real-Ip")
	if addr == "" {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			addr = strings.TrimSpace(strings.Split(forwarded, ",")[0])
		}
	}
	if addr == "" {
		addr = r.RemoteAddr
	}

	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}

	ip := net.ParseIP(addr)
	if ip == nil {
		return "", fmt.Errorf("invalid client address %q", addr)
	}
	if IsLocalIP(ip) {
		return "localhost", nil
	}
	return ip.String(), nil
}
