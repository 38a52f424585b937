package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (c *countingReloader) ReloadHolders(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestReloaderRunsPeriodically(t *testing.T) {
	target := &countingReloader{}
	r := NewReloader(target, 5*time.Millisecond, zap.NewNop())

	r.Start(context.Background())
	assert.Eventually(t, func() bool { return target.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	r.Stop()

	calls := target.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, target.calls.Load())
}

func TestReloaderKeepsRunningOnError(t *testing.T) {
	target := &countingReloader{err: errors.New("store down")}
	r := NewReloader(target, 5*time.Millisecond, zap.NewNop())

	r.Start(context.Background())
	assert.Eventually(t, func() bool { return target.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	r.Stop()
}

func TestReloaderDisabled(t *testing.T) {
	target := &countingReloader{}
	r := NewReloader(target, 0, zap.NewNop())

	r.Start(context.Background())
	r.Stop()
	assert.Zero(t, target.calls.Load())
}

func TestReloaderStopsOnContextCancel(t *testing.T) {
	target := &countingReloader{}
	r := NewReloader(target, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()
	r.Stop()
	assert.Zero(t, target.calls.Load())
}
