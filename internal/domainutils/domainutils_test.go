package domainutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DomainUtils(t *testing.T) {
	t.Run("Extracts lower-cased hostname without port", func(t *testing.T) {
		require.Equal(t, "api.example.com", Hostname("https://API.Example.com:8443/v1/users?x=1"))
	})

	t.Run("Relative URLs have no hostname", func(t *testing.T) {
		require.Equal(t, "", Hostname("/api/users"))
		require.Equal(t, "", Hostname("example.com/path"))
	})

	t.Run("Unparsable URLs have no hostname", func(t *testing.T) {
		require.Equal(t, "", Hostname("http://[::1"))
		require.Equal(t, "", Hostname("%zz"))
		require.Equal(t, "", Hostname(""))
	})

	t.Run("Splits domain and subdomain", func(t *testing.T) {
		require.Equal(t, "example.com", Domain("https://api.eu.example.com/x"))
		require.Equal(t, "api.eu", Subdomain("https://api.eu.example.com/x"))
		require.Equal(t, "example.com", Domain("https://example.com"))
		require.Equal(t, "", Subdomain("https://example.com"))
	})

	t.Run("IP hosts are kept whole", func(t *testing.T) {
		require.Equal(t, "10.0.0.12", Domain("http://10.0.0.12:8080/health"))
		require.Equal(t, "", Subdomain("http://10.0.0.12:8080/health"))
	})
}
