package main

import (
	"testing"

	"github.com/SscSPs/gym_management_app/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthLimiter(t *testing.T) {
	lim, err := newAuthLimiter(&config.Config{LoginRateLimit: "5-M"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), lim.Rate.Limit)

	_, err = newAuthLimiter(&config.Config{LoginRateLimit: "five"})
	assert.Error(t, err)

	_, err = newAuthLimiter(&config.Config{LoginRateLimit: "5-M", RedisURL: "://bad"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warn").String())
	assert.Equal(t, "INFO", parseLogLevel("verbose").String())
}
