package utils

import (
	"net"
	"net/url"
	"strings"
)

// Hostname strips the port and any brackets from a host value
// Example: localhost:3001 -> localhost
func Hostname(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return ""
	}

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	return strings.ToLower(strings.Trim(host, "[]"))
}

// HostFromOrigin returns the host name of an origin such as http://localhost:3001.
// Values without a scheme are treated as bare hosts.
func HostFromOrigin(origin string) string {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ""
	}

	if strings.Contains(origin, "://") {
		u, err := url.Parse(origin)
		if err != nil {
			return ""
		}
		return strings.ToLower(u.Hostname())
	}

	return Hostname(strings.SplitN(origin, "/", 2)[0])
}

// IsLocalHost reports whether the host name belongs to a local development machine
func IsLocalHost(host string) bool {
	switch Hostname(host) {
	case "localhost", "127.0.0.1":
		return true
	}
	return false
}
