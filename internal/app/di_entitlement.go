package app

import (
	"context"
	"fmt"
	"time"

	entitlementRepository "github.com/prepdeck/contentguard/internal/entitlement/repository"
	entitlementUseCase "github.com/prepdeck/contentguard/internal/entitlement/usecase"
)

// DeviceSessionRepository extends the oracle's view of device sessions with
// the maintenance operation used by the cleanup command.
type DeviceSessionRepository interface {
	entitlementUseCase.DeviceSessionRepository
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// SubscriptionRepository returns the subscription repository based on the
// database driver.
func (c *Container) SubscriptionRepository() (entitlementUseCase.SubscriptionRepository, error) {
	c.subscriptionRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["subscriptionRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.subscriptionRepo = entitlementRepository.NewMySQLSubscriptionRepository(db)
		case "postgres":
			c.subscriptionRepo = entitlementRepository.NewPostgreSQLSubscriptionRepository(db)
		default:
			c.initErrors["subscriptionRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["subscriptionRepo"]; exists {
		return nil, err
	}
	return c.subscriptionRepo, nil
}

// DeviceSessionRepo returns the device session repository based on the
// database driver.
func (c *Container) DeviceSessionRepo() (DeviceSessionRepository, error) {
	c.deviceSessionRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["deviceSessionRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.deviceSessionRepo = entitlementRepository.NewMySQLDeviceSessionRepository(db)
		case "postgres":
			c.deviceSessionRepo = entitlementRepository.NewPostgreSQLDeviceSessionRepository(db)
		default:
			c.initErrors["deviceSessionRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["deviceSessionRepo"]; exists {
		return nil, err
	}
	return c.deviceSessionRepo, nil
}

// Oracle returns the entitlement oracle.
func (c *Container) Oracle() (entitlementUseCase.Oracle, error) {
	c.oracleInit.Do(func() {
		contents, err := c.ContentRepository()
		if err != nil {
			c.initErrors["oracle"] = err
			return
		}
		subscriptions, err := c.SubscriptionRepository()
		if err != nil {
			c.initErrors["oracle"] = err
			return
		}
		devices, err := c.DeviceSessionRepo()
		if err != nil {
			c.initErrors["oracle"] = err
			return
		}
		c.oracle = entitlementUseCase.NewOracle(contents, subscriptions, devices, c.config.DeviceSessionLimit)
	})
	if err, exists := c.initErrors["oracle"]; exists {
		return nil, err
	}
	return c.oracle, nil
}
