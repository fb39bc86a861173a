// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subburnd/subburnd/internal/config"
)

func testServerConfig() config.ServerConfig {
	return config.ServerConfig{
		ListenAddr:      "127.0.0.1:0",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     5 * time.Second,
		ShutdownTimeout: 2 * time.Second,
		MaxHeaderBytes:  1 << 20,
	}
}

func testDeps() Deps {
	return Deps{
		Logger:     zerolog.New(io.Discard).Level(zerolog.ErrorLevel),
		APIHandler: http.NewServeMux(),
	}
}

func TestNewManagerValidatesDeps(t *testing.T) {
	_, err := NewManager(testServerConfig(), Deps{Logger: testDeps().Logger})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIHandler)
}

func TestShutdownBeforeStart(t *testing.T) {
	m, err := NewManager(testServerConfig(), testDeps())
	require.NoError(t, err)

	err = m.Shutdown(context.Background())
	assert.ErrorIs(t, err, ErrManagerNotStarted)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	m, err := NewManager(testServerConfig(), testDeps())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()

	// Give the listener a moment to come up, then pull the plug.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("manager did not stop after context cancellation")
	}
}

func TestShutdownHooksRunLIFO(t *testing.T) {
	m, err := NewManager(testServerConfig(), testDeps())
	require.NoError(t, err)

	var order []string
	m.RegisterShutdownHook("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	m.RegisterShutdownHook("second", func(context.Context) error {
		order = append(order, "second")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("manager did not stop")
	}

	assert.Equal(t, []string{"second", "first"}, order)
}

func TestAppRequiresManager(t *testing.T) {
	app := NewApp(testDeps().Logger, nil, nil, config.AppConfig{})
	err := app.Run(context.Background())
	assert.ErrorIs(t, err, ErrMissingManager)
}
