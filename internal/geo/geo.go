// Package geo resolves a submitter's IP address to a country code.
package geo

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// Locator looks up the ISO country code for an IP. An empty code with a nil
// error means the address is unknown.
type Locator interface {
	Country(ip string) (string, error)
}

// NoopLocator is used when no GeoIP database is configured
type NoopLocator struct{}

func (NoopLocator) Country(string) (string, error) { return "", nil }

// GeoIPLocator reads a MaxMind country or city database
type GeoIPLocator struct {
	reader *geoip2.Reader
}

// Open opens the .mmdb file at path
func Open(path string) (*GeoIPLocator, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database: %w", err)
	}
	return &GeoIPLocator{reader: reader}, nil
}

// Close releases the database
func (l *GeoIPLocator) Close() error {
	if l.reader == nil {
		return nil
	}
	return l.reader.Close()
}

func (l *GeoIPLocator) Country(ipAddress string) (string, error) {
	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return "", fmt.Errorf("invalid ip address: %q", ipAddress)
	}
	if ip.IsLoopback() || ip.IsPrivate() {
		return "", nil
	}

	record, err := l.reader.Country(ip)
	if err != nil {
		return "", err
	}
	return record.Country.IsoCode, nil
}

// ClientIP strips the port from a RemoteAddr-style value
func ClientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// TrustedProxies decides when X-Forwarded-For may be believed. A nil or
// empty set trusts no proxy and always uses the peer address.
type TrustedProxies struct {
	nets []*net.IPNet
}

// ParseTrustedProxies accepts CIDR ranges or single addresses
func ParseTrustedProxies(entries []string) (*TrustedProxies, error) {
	t := &TrustedProxies{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", entry)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			t.nets = append(t.nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		t.nets = append(t.nets, n)
	}
	return t, nil
}

func (t *TrustedProxies) trusts(addr string) bool {
	if t == nil {
		return false
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range t.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the submitter's address. X-Forwarded-For is read right to
// left only while each hop is a trusted proxy, starting from the peer.
func (t *TrustedProxies) ClientIP(r *http.Request) string {
	addr := ClientIP(r.RemoteAddr)
	if !t.trusts(addr) {
		return addr
	}

	var hops []string
	for _, header := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(header, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	for i := len(hops) - 1; i >= 0; i-- {
		if net.ParseIP(hops[i]) == nil {
			break
		}
		addr = hops[i]
		if !t.trusts(addr) {
			break
		}
	}
	return addr
}
