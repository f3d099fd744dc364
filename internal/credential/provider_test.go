package credential

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStaticProviderReturnsConfiguredToken(t *testing.T) {
	p := NewStaticProvider("fixed-token")

	cred, err := p.Acquire(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", cred.Token)
	assert.Equal(t, "client-1", cred.ClientID)
	assert.True(t, cred.Valid())
}

func TestNewProviderPrefersStaticToken(t *testing.T) {
	p := NewProvider(config.CredentialConfig{StaticToken: "tok"}, zap.NewNop())
	assert.IsType(t, &StaticProvider{}, p)

	p = NewProvider(config.CredentialConfig{TokenEndpoint: "http://localhost:9", CacheTTL: time.Minute}, zap.NewNop())
	assert.IsType(t, &EndpointProvider{}, p)
}

func TestEndpointProviderAcquiresAndCaches(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "client-1", req["client_id"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "issued-token",
			"expires_in":   3600,
		})
	}))
	defer srv.Close()

	p := NewEndpointProvider(config.CredentialConfig{
		TokenEndpoint: srv.URL,
		CacheTTL:      time.Minute,
		Timeout:       5 * time.Second,
	}, zap.NewNop())

	cred, err := p.Acquire(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", cred.Token)
	assert.True(t, cred.Valid())

	// Second acquire is served from cache
	again, err := p.Acquire(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, cred, again)
	assert.Equal(t, 1, hits)
}

func TestEndpointProviderRejectsEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": ""})
	}))
	defer srv.Close()

	p := NewEndpointProvider(config.CredentialConfig{
		TokenEndpoint: srv.URL,
		CacheTTL:      time.Minute,
		Timeout:       5 * time.Second,
	}, zap.NewNop())

	_, err := p.Acquire(context.Background(), "client-1")
	assert.Error(t, err)
}

func TestEndpointProviderPropagatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewEndpointProvider(config.CredentialConfig{
		TokenEndpoint: srv.URL,
		CacheTTL:      time.Minute,
		Timeout:       5 * time.Second,
	}, zap.NewNop())

	_, err := p.Acquire(context.Background(), "client-1")
	assert.Error(t, err)
}

func TestCredentialExpiry(t *testing.T) {
	expired := &Credential{Token: "t", ExpiresAt: time.Now().Add(-time.Minute)}
	assert.False(t, expired.Valid())

	current := &Credential{Token: "t", ExpiresAt: time.Now().Add(time.Minute)}
	assert.True(t, current.Valid())

	var nilCred *Credential
	assert.False(t, nilCred.Valid())
}
