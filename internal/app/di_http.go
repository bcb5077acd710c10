package app

import (
	contentHTTP "github.com/prepdeck/contentguard/internal/content/http"
	internalHTTP "github.com/prepdeck/contentguard/internal/http"
	"github.com/prepdeck/contentguard/internal/identity"
	securityHTTP "github.com/prepdeck/contentguard/internal/security/http"
)

// IdentityProvider returns the session-service-backed identity provider.
func (c *Container) IdentityProvider() identity.Provider {
	c.identityProviderInit.Do(func() {
		c.identityProvider = identity.NewHTTPProvider(c.config.IdentityProviderURL, nil)
	})
	return c.identityProvider
}

// initHTTPServer creates the API server with all its dependencies.
func (c *Container) initHTTPServer() (*internalHTTP.Server, error) {
	contentUC, err := c.ContentUseCase()
	if err != nil {
		return nil, err
	}
	securityUC, err := c.SecurityUseCase()
	if err != nil {
		return nil, err
	}
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	logger := c.Logger()
	contentHandler := contentHTTP.NewContentHandler(contentUC, c.config.MediaRoot, logger)
	securityHandler := securityHTTP.NewSecurityHandler(securityUC, logger)

	return internalHTTP.NewServer(
		c.config,
		logger,
		metricsProvider,
		c.IdentityProvider(),
		contentHandler,
		securityHandler,
		db.Ping,
	), nil
}
