package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunner_StopsOnCancel(t *testing.T) {
	r := NewRunner(testLogger())
	var started, stopped atomic.Int32
	for _, name := range []string{"a", "b"} {
		r.Add(name, ComponentFunc(func(ctx context.Context) error {
			started.Add(1)
			<-ctx.Done()
			stopped.Add(1)
			return ctx.Err()
		}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return started.Load() == 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
	assert.Equal(t, int32(2), stopped.Load())
}

func TestRunner_ComponentFailureStopsOthers(t *testing.T) {
	r := NewRunner(testLogger())
	boom := errors.New("boom")
	r.Add("failing", ComponentFunc(func(context.Context) error { return boom }))

	var stopped atomic.Bool
	r.Add("waiting", ComponentFunc(func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Store(true)
		return nil
	}))

	err := r.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, stopped.Load())
}

func TestRunner_NoComponents(t *testing.T) {
	r := NewRunner(nil)
	r.Add("nil", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
}

func TestRunner_AddReplaces(t *testing.T) {
	r := NewRunner(testLogger())
	var calls atomic.Int32
	r.Add("x", ComponentFunc(func(context.Context) error { return errors.New("old") }))
	r.Add("x", ComponentFunc(func(ctx context.Context) error {
		calls.Add(1)
		<-ctx.Done()
		return nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, r.Run(ctx))
	assert.Equal(t, int32(1), calls.Load())
	assert.Len(t, r.order, 1)
}
