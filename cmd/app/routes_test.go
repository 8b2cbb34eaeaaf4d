package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxdesk/internal/repository"
	"fxdesk/internal/session"
)

func TestReadinessChecks_PingsSessionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := &App{
		repo:     repository.NewMemoryQuoteRepository(),
		sessions: session.NewStore(client, time.Hour),
	}

	deps := app.readinessChecks()
	require.Len(t, deps, 2)
	assert.Equal(t, "store", deps[0].Name)
	assert.Equal(t, "session redis", deps[1].Name)
	for _, d := range deps {
		assert.NoError(t, d.Ping(context.Background()), d.Name)
	}

	mr.Close()
	assert.Error(t, deps[1].Ping(context.Background()))
}

func TestReadinessChecks_MemoryOnly(t *testing.T) {
	app := &App{repo: repository.NewMemoryQuoteRepository()}

	deps := app.readinessChecks()
	require.Len(t, deps, 1)
	assert.Equal(t, "store", deps[0].Name)
}
