package app

import (
	"fmt"

	securityRepository "github.com/prepdeck/contentguard/internal/security/repository"
	securityUseCase "github.com/prepdeck/contentguard/internal/security/usecase"
)

// EventRepository returns the suspicious-activity event repository based on
// the database driver.
func (c *Container) EventRepository() (securityUseCase.EventRepository, error) {
	c.eventRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["eventRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.eventRepository = securityRepository.NewMySQLEventRepository(db)
		case "postgres":
			c.eventRepository = securityRepository.NewPostgreSQLEventRepository(db)
		default:
			c.initErrors["eventRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["eventRepo"]; exists {
		return nil, err
	}
	return c.eventRepository, nil
}

// GeoResolver returns the GeoIP resolver, or nil when no database path is
// configured.
func (c *Container) GeoResolver() (securityUseCase.GeoResolver, error) {
	c.geoResolverInit.Do(func() {
		if c.config.GeoIPDatabasePath == "" {
			return
		}
		resolver, err := securityUseCase.OpenGeoResolver(c.config.GeoIPDatabasePath)
		if err != nil {
			c.initErrors["geoResolver"] = fmt.Errorf("failed to open GeoIP database: %w", err)
			return
		}
		c.geoResolver = resolver
	})
	if err, exists := c.initErrors["geoResolver"]; exists {
		return nil, err
	}
	return c.geoResolver, nil
}

// SecurityUseCase returns the suspicious-activity use case.
func (c *Container) SecurityUseCase() (securityUseCase.SecurityUseCase, error) {
	c.securityUCInit.Do(func() {
		events, err := c.EventRepository()
		if err != nil {
			c.initErrors["securityUC"] = err
			return
		}
		geo, err := c.GeoResolver()
		if err != nil {
			c.initErrors["securityUC"] = err
			return
		}
		c.securityUC = securityUseCase.NewSecurityUseCase(events, geo, c.Logger())
	})
	if err, exists := c.initErrors["securityUC"]; exists {
		return nil, err
	}
	return c.securityUC, nil
}
