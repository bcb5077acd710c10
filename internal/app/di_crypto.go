package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/prepdeck/contentguard/internal/crypto/domain"
	cryptoService "github.com/prepdeck/contentguard/internal/crypto/service"
)

// KMSKeeper returns the KMS keeper used to unwrap master key material, or
// nil when no KMS is configured and master keys are plaintext in the
// environment.
func (c *Container) KMSKeeper() (cryptoDomain.KMSKeeper, error) {
	c.kmsKeeperInit.Do(func() {
		if c.config.KMSKeyURI == "" {
			return
		}
		keeper, err := cryptoService.NewKMSService().OpenKeeper(context.Background(), c.config.KMSKeyURI)
		if err != nil {
			c.initErrors["kmsKeeper"] = fmt.Errorf("failed to open KMS keeper: %w", err)
			return
		}
		c.kmsKeeper = keeper
	})
	if err, exists := c.initErrors["kmsKeeper"]; exists {
		return nil, err
	}
	return c.kmsKeeper, nil
}

// MasterKeyChain returns the master key chain loaded from the environment.
func (c *Container) MasterKeyChain() (*cryptoDomain.MasterKeyChain, error) {
	c.masterKeyChainInit.Do(func() {
		keeper, err := c.KMSKeeper()
		if err != nil {
			c.initErrors["masterKeyChain"] = err
			return
		}
		chain, err := cryptoDomain.LoadMasterKeyChainFromEnv(context.Background(), keeper)
		if err != nil {
			c.initErrors["masterKeyChain"] = fmt.Errorf("failed to load master key chain: %w", err)
			return
		}
		c.masterKeyChain = chain
	})
	if err, exists := c.initErrors["masterKeyChain"]; exists {
		return nil, err
	}
	return c.masterKeyChain, nil
}

// Sealer returns the envelope sealer for premium content bodies.
func (c *Container) Sealer() (cryptoService.Sealer, error) {
	c.sealerInit.Do(func() {
		chain, err := c.MasterKeyChain()
		if err != nil {
			c.initErrors["sealer"] = err
			return
		}
		c.sealer = cryptoService.NewEnvelopeSealer(chain, cryptoService.NewAEADManager())
	})
	if err, exists := c.initErrors["sealer"]; exists {
		return nil, err
	}
	return c.sealer, nil
}
