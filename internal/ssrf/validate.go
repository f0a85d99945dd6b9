// Package ssrf validates ingestion endpoint URLs before a Client will ever
// send a request to them, rejecting endpoints whose host is a private or
// reserved IP literal. DNS names are not resolved here.
package ssrf

import (
	"fmt"
	"net"
	"strings"
)

// IsPrivateIP reports whether host parses as an IP literal that falls in
// a private, loopback, link-local, or carrier-grade-NAT range. Non-IP
// hostnames (DNS names) always report false — resolution happens later,
// outside this package's scope.
func IsPrivateIP(host string) bool {
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return isPrivateAddr(ip)
}

// isPrivateAddr classifies both plain IPv4 and IPv6 (including IPv4-mapped
// IPv6, which To4 resolves down to its 4-byte form and routes through the
// same switch as a plain v4 address).
func isPrivateAddr(ip net.IP) bool {
	if v4 := ip.To4(); v4 != nil {
		switch {
		case v4[0] == 0: // 0.0.0.0/8
			return true
		case v4[0] == 10: // 10.0.0.0/8
			return true
		case v4[0] == 172 && v4[1] >= 16 && v4[1] <= 31: // 172.16.0.0/12
			return true
		case v4[0] == 192 && v4[1] == 168: // 192.168.0.0/16
			return true
		case v4[0] == 127: // 127.0.0.0/8
			return true
		case v4[0] == 169 && v4[1] == 254: // 169.254.0.0/16
			return true
		case v4[0] == 100 && v4[1] >= 64 && v4[1] <= 127: // 100.64.0.0/10 (CGNAT)
			return true
		default:
			return false
		}
	}

	if ip.IsLoopback() {
		return true
	}
	segments := ip.To16()
	first := uint16(segments[0])<<8 | uint16(segments[1])
	if first&0xfe00 == 0xfc00 { // fc00::/7 (ULA)
		return true
	}
	if first&0xffc0 == 0xfe80 { // fe80::/10 (link-local)
		return true
	}
	return false
}

// ValidateEndpoint checks endpoint is a well-formed HTTPS URL (HTTP is
// permitted only for localhost), carries no embedded credentials, and does
// not name a private or reserved IP literal as its host (hostnames are not
// resolved). It returns endpoint unchanged on success.
func ValidateEndpoint(endpoint string) (string, error) {
	if endpoint == "" {
		return "", fmt.Errorf("peekapi: endpoint is required")
	}

	parsed, err := parseURL(endpoint)
	if err != nil {
		return "", err
	}

	isLocalhost := parsed.host == "localhost" || parsed.host == "127.0.0.1" || parsed.host == "::1"

	if parsed.scheme != "https" && !isLocalhost {
		return "", fmt.Errorf("peekapi: endpoint must use HTTPS; plain HTTP is only allowed for localhost: %s", endpoint)
	}

	if parsed.hasCredentials {
		return "", fmt.Errorf("peekapi: endpoint URL must not contain credentials")
	}

	if !isLocalhost && IsPrivateIP(parsed.host) {
		return "", fmt.Errorf("peekapi: endpoint must not point to a private or internal IP address: %s", parsed.host)
	}

	return endpoint, nil
}

type parsedURL struct {
	scheme         string
	host           string
	hasCredentials bool
}

// parseURL is a deliberately minimal URL parser: the validator must not
// accept any of the permissive encodings net/url tolerates (backslashes,
// bare userinfo quirks, etc.), so it only ever looks at the scheme,
// authority, and host it needs to classify.
func parseURL(endpoint string) (parsedURL, error) {
	scheme, rest, ok := strings.Cut(endpoint, "://")
	if !ok {
		return parsedURL{}, fmt.Errorf("peekapi: invalid endpoint URL: %s", endpoint)
	}

	authority := rest
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		authority = rest[:idx]
	}
	hasCredentials := strings.Contains(authority, "@")

	hostPort := authority
	if hasCredentials {
		if idx := strings.LastIndexByte(authority, '@'); idx >= 0 {
			hostPort = authority[idx+1:]
		}
	}

	var host string
	if strings.HasPrefix(hostPort, "[") {
		end := strings.IndexByte(hostPort, ']')
		if end < 0 {
			return parsedURL{}, fmt.Errorf("peekapi: invalid endpoint URL: %s", endpoint)
		}
		host = hostPort[1:end]
	} else if idx := strings.IndexByte(hostPort, ':'); idx >= 0 {
		host = hostPort[:idx]
	} else {
		host = hostPort
	}

	if host == "" {
		return parsedURL{}, fmt.Errorf("peekapi: invalid endpoint URL: %s", endpoint)
	}

	return parsedURL{
		scheme:         strings.ToLower(scheme),
		host:           strings.ToLower(host),
		hasCredentials: hasCredentials,
	}, nil
}
