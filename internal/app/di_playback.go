package app

import (
	"fmt"

	playbackRepository "github.com/prepdeck/contentguard/internal/playback/repository"
	playbackService "github.com/prepdeck/contentguard/internal/playback/service"
	playbackUseCase "github.com/prepdeck/contentguard/internal/playback/usecase"
)

// TokenRepository returns the embedded playback token store.
func (c *Container) TokenRepository() (*playbackRepository.BadgerTokenRepository, error) {
	c.tokenRepoInit.Do(func() {
		repo, err := playbackRepository.OpenBadgerTokenRepository(c.config.TokenStorePath)
		if err != nil {
			c.initErrors["tokenRepo"] = fmt.Errorf("failed to open token store: %w", err)
			return
		}
		c.tokenRepository = repo
	})
	if err, exists := c.initErrors["tokenRepo"]; exists {
		return nil, err
	}
	return c.tokenRepository, nil
}

// TokenService returns the playback token generator.
func (c *Container) TokenService() playbackService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = playbackService.NewTokenService()
	})
	return c.tokenService
}

// PlaybackUseCase returns the playback use case, instrumented with business
// metrics.
func (c *Container) PlaybackUseCase() (playbackUseCase.PlaybackUseCase, error) {
	c.playbackUCInit.Do(func() {
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["playbackUC"] = err
			return
		}
		oracle, err := c.Oracle()
		if err != nil {
			c.initErrors["playbackUC"] = err
			return
		}
		devices, err := c.DeviceSessionRepo()
		if err != nil {
			c.initErrors["playbackUC"] = err
			return
		}
		tokens, err := c.TokenRepository()
		if err != nil {
			c.initErrors["playbackUC"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["playbackUC"] = err
			return
		}

		useCase := playbackUseCase.NewPlaybackUseCase(
			c.config,
			txManager,
			oracle,
			devices,
			tokens,
			c.TokenService(),
			c.Logger(),
		)
		c.playbackUC = playbackUseCase.NewPlaybackUseCaseWithMetrics(useCase, businessMetrics)
	})
	if err, exists := c.initErrors["playbackUC"]; exists {
		return nil, err
	}
	return c.playbackUC, nil
}
