//go:build !integration

package app

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/package-form/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewServer(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "8080", RequestTimeout: 30 * time.Second})

	require.NotNil(t, server.httpServer)
	assert.Equal(t, ":8080", server.httpServer.Addr)
	assert.Equal(t, 5*time.Second, server.httpServer.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
	assert.Equal(t, 35*time.Second, server.httpServer.WriteTimeout, "leaves room for the timeout response")
	assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
	assert.Equal(t, 10*time.Second, server.shutdownTimeout)
}

func TestServer_RunContext(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "0"})
	ctx, cancel := context.WithCancel(context.Background())

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.RunContext(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Server did not shutdown in time")
	}
}

func TestServer_RunContext_ListenError(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "invalid-port"})

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.RunContext(context.Background())
	}()

	select {
	case err := <-errChan:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a listen error")
	}
}

func TestServer_Run_GracefulShutdownOnSignal(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "0"})

	done := make(chan error, 1)
	go func() {
		done <- server.Run()
	}()

	time.Sleep(50 * time.Millisecond)

	proc, _ := os.FindProcess(os.Getpid())
	_ = proc.Signal(syscall.SIGTERM)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "Server did not shutdown gracefully")
	}
}
