package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	t.Run("Success_DisabledReturnsNil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://app.prepdeck.io", testLogger()))
	})

	t.Run("Success_EnabledWithoutOriginsReturnsNil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "", testLogger()))
	})

	t.Run("Success_EnabledWithOrigins", func(t *testing.T) {
		middleware := createCORSMiddleware(true, "https://app.prepdeck.io, https://staging.prepdeck.io", testLogger())
		assert.NotNil(t, middleware)
	})
}

func TestParseOrigins(t *testing.T) {
	t.Run("Success_TrimsAndSkipsEmpty", func(t *testing.T) {
		origins := parseOrigins(" https://a.example ,, https://b.example ")
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins)
	})

	t.Run("Success_EmptyInput", func(t *testing.T) {
		assert.Nil(t, parseOrigins(""))
	})
}
