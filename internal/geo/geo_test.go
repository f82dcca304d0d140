package geo

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopLocator(t *testing.T) {
	code, err := NoopLocator{}.Country("8.8.8.8")
	assert.NoError(t, err)
	assert.Empty(t, code)
}

func TestOpenMissingDatabase(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"))
	assert.Error(t, err)
}

func TestPrivateAddressesSkipLookup(t *testing.T) {
	// reader is never touched for private ranges
	l := &GeoIPLocator{}
	for _, ip := range []string{"127.0.0.1", "10.1.2.3", "192.168.0.10", "::1"} {
		code, err := l.Country(ip)
		assert.NoError(t, err, ip)
		assert.Empty(t, code, ip)
	}

	_, err := l.Country("not-an-ip")
	assert.Error(t, err)
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "203.0.113.7", ClientIP("203.0.113.7:51234"))
	assert.Equal(t, "2001:db8::1", ClientIP("[2001:db8::1]:443"))
	assert.Equal(t, "203.0.113.7", ClientIP("203.0.113.7"))
}

func TestTrustedProxiesClientIP(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.0.2.1 ", ""})
	require.NoError(t, err)

	tests := []struct {
		name    string
		proxies *TrustedProxies
		remote  string
		xff     string
		want    string
	}{
		{"no proxies configured", nil, "198.51.100.9:1234", "203.0.113.7", "198.51.100.9"},
		{"untrusted peer", proxies, "198.51.100.9:1234", "203.0.113.7", "198.51.100.9"},
		{"trusted peer", proxies, "10.0.0.5:80", "203.0.113.7", "203.0.113.7"},
		{"single address entry", proxies, "192.0.2.1:80", "203.0.113.7", "203.0.113.7"},
		{"forged leftmost hop", proxies, "10.0.0.5:80", "1.2.3.4, 203.0.113.7", "203.0.113.7"},
		{"chain of trusted hops", proxies, "10.0.0.5:80", "203.0.113.7, 10.0.0.9", "203.0.113.7"},
		{"garbage hop", proxies, "10.0.0.5:80", "bogus", "10.0.0.5"},
		{"no header", proxies, "10.0.0.5:80", "", "10.0.0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			assert.Equal(t, tt.want, tt.proxies.ClientIP(r))
		})
	}
}

func TestParseTrustedProxiesRejectsGarbage(t *testing.T) {
	_, err := ParseTrustedProxies([]string{"not-an-ip"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}
