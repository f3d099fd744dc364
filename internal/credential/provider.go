package credential

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	pkghttp "github.com/aprendis543/Modernize-your-code-solution-accelerator/pkg/http"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Credential is an acquired bearer credential for the AI project service
type Credential struct {
	Token     string
	ClientID  string
	ExpiresAt time.Time
}

// Valid reports whether the credential can still be used
func (c *Credential) Valid() bool {
	return c != nil && c.Token != "" && (c.ExpiresAt.IsZero() || time.Now().Before(c.ExpiresAt))
}

// Provider acquires credentials for a configured client identity
type Provider interface {
	Acquire(ctx context.Context, clientID string) (*Credential, error)
}

// NewProvider selects the provider implementation from configuration: a
// static token when one is configured, otherwise the token endpoint.
func NewProvider(cfg config.CredentialConfig, logger *zap.Logger) Provider {
	if cfg.StaticToken != "" {
		return NewStaticProvider(cfg.StaticToken)
	}
	return NewEndpointProvider(cfg, logger)
}

// StaticProvider returns a fixed token from the environment. Used for local
// development against pre-authorized endpoints.
type StaticProvider struct {
	token string
}

func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

func (p *StaticProvider) Acquire(_ context.Context, clientID string) (*Credential, error) {
	return &Credential{Token: p.token, ClientID: clientID}, nil
}

// EndpointProvider exchanges a client identity for a token at a
// managed-identity style token endpoint, caching acquired tokens per client.
type EndpointProvider struct {
	cfg       config.CredentialConfig
	connector *pkghttp.Connector
	cache     *gocache.Cache
	logger    *zap.Logger
}

func NewEndpointProvider(cfg config.CredentialConfig, logger *zap.Logger) *EndpointProvider {
	return &EndpointProvider{
		cfg: cfg,
		connector: pkghttp.NewConnector(
			&pkghttp.ConnectorConfig{BaseURL: cfg.TokenEndpoint, Logger: logger},
			pkghttp.WithRequestTimeout(cfg.Timeout),
			pkghttp.WithRequestLogging(),
		),
		cache:  gocache.New(cfg.CacheTTL, 10*time.Minute),
		logger: logger,
	}
}

type tokenRequest struct {
	ClientID string `json:"client_id"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (p *EndpointProvider) Acquire(ctx context.Context, clientID string) (*Credential, error) {
	if cached, found := p.cache.Get(clientID); found {
		cred := cached.(*Credential)
		if cred.Valid() {
			return cred, nil
		}
		p.cache.Delete(clientID)
	}

	var resp tokenResponse
	err := p.connector.DoRequest(ctx, http.MethodPost, "", &tokenRequest{ClientID: clientID}, &resp)
	if err != nil {
		return nil, fmt.Errorf("acquire token for client %q: %w", clientID, err)
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned empty token for client %q", clientID)
	}

	cred := &Credential{
		Token:    resp.AccessToken,
		ClientID: clientID,
	}

	ttl := p.cfg.CacheTTL
	if resp.ExpiresIn > 0 {
		cred.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
		// Refresh slightly before the token actually expires
		if expiryTTL := time.Duration(resp.ExpiresIn-60) * time.Second; expiryTTL > 0 && expiryTTL < ttl {
			ttl = expiryTTL
		}
	}

	p.cache.Set(clientID, cred, ttl)
	p.logger.Info("credential acquired",
		zap.String("client_id", clientID),
		zap.Time("expires_at", cred.ExpiresAt),
	)

	return cred, nil
}
