package app

import (
	"fmt"

	contentRepository "github.com/prepdeck/contentguard/internal/content/repository"
	contentUseCase "github.com/prepdeck/contentguard/internal/content/usecase"
)

// ContentRepository returns the content repository based on the database
// driver. It also serves as the oracle's content catalog.
func (c *Container) ContentRepository() (contentUseCase.ContentRepository, error) {
	c.contentRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["contentRepo"] = err
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.contentRepository = contentRepository.NewMySQLContentRepository(db)
		case "postgres":
			c.contentRepository = contentRepository.NewPostgreSQLContentRepository(db)
		default:
			c.initErrors["contentRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if err, exists := c.initErrors["contentRepo"]; exists {
		return nil, err
	}
	return c.contentRepository, nil
}

// ContentUseCase returns the content access gateway use case.
func (c *Container) ContentUseCase() (contentUseCase.ContentUseCase, error) {
	c.contentUCInit.Do(func() {
		contents, err := c.ContentRepository()
		if err != nil {
			c.initErrors["contentUC"] = err
			return
		}
		sealer, err := c.Sealer()
		if err != nil {
			c.initErrors["contentUC"] = err
			return
		}
		oracle, err := c.Oracle()
		if err != nil {
			c.initErrors["contentUC"] = err
			return
		}
		playback, err := c.PlaybackUseCase()
		if err != nil {
			c.initErrors["contentUC"] = err
			return
		}
		c.contentUC = contentUseCase.NewContentUseCase(contents, sealer, oracle, playback, c.Logger())
	})
	if err, exists := c.initErrors["contentUC"]; exists {
		return nil, err
	}
	return c.contentUC, nil
}
