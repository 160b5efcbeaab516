package redisconn_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallerykit/gallerykit/redisconn"
)

func TestConnect_EmptyURL(t *testing.T) {
	t.Parallel()

	_, err := redisconn.Connect(context.Background(), redisconn.Config{})
	assert.ErrorIs(t, err, redisconn.ErrEmptyURL)
}

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := redisconn.Connect(context.Background(), redisconn.Config{
		URL:            "not-a-redis-url",
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, redisconn.ErrInvalidURL)
}

// Requires a running Redis; set TEST_REDIS_URL to enable.
func TestConnect_Integration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping redis integration test")
	}

	client, err := redisconn.Connect(context.Background(), redisconn.Config{
		URL:            url,
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, redisconn.Healthcheck(client)(context.Background()))
}
