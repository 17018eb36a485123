package main

import (
	"net/http"
	"testing"

	"github.com/ritzau/folia-viewer/pkg/config"
	"github.com/ritzau/folia-viewer/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	t.Run("http has no client timeout", func(t *testing.T) {
		cfg := &config.Config{Provider: config.ProviderConfig{URL: "http://catalog.test"}}

		p, err := newProvider(cfg)
		require.NoError(t, err)
		hp, ok := p.(*provider.HTTPProvider)
		require.True(t, ok, "expected HTTP provider, got %T", p)
		assert.Same(t, http.DefaultClient, hp.Client())
		assert.Zero(t, hp.Client().Timeout)
	})

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{Provider: config.ProviderConfig{File: "graph.json"}}

		p, err := newProvider(cfg)
		require.NoError(t, err)
		assert.IsType(t, &provider.FileProvider{}, p)
	})

	t.Run("none", func(t *testing.T) {
		_, err := newProvider(&config.Config{})
		assert.Error(t, err)
	})
}
