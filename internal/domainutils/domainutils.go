// Package domainutils extracts host information from captured URLs without
// ever failing.
package domainutils

import (
	"net"
	"net/url"
	"strings"
)

// Hostname returns the lower-cased host of rawURL without its port. Relative
// or unparsable URLs yield "".
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Domain returns the last two labels of the hostname in rawURL, e.g.
// "example.com" for "https://api.eu.example.com/x". IP addresses are
// returned whole.
func Domain(rawURL string) string {
	host := Hostname(rawURL)
	if host == "" || net.ParseIP(host) != nil {
		return host
	}
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

// Subdomain returns everything in front of Domain, or "" when there is none.
func Subdomain(rawURL string) string {
	host := Hostname(rawURL)
	domain := Domain(rawURL)
	if host == domain {
		return ""
	}
	return strings.TrimSuffix(host, "."+domain)
}
