package connectivity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	fail atomic.Bool
}

func (p *fakePinger) Ping(ctx context.Context) error {
	if p.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestProber_Probe(t *testing.T) {
	pinger := &fakePinger{}
	m := NewMonitor(false, nil, testLogger())
	p := NewProber(pinger, m, time.Second, testLogger())

	assert.True(t, p.Probe(context.Background()))
	pinger.fail.Store(true)
	assert.False(t, p.Probe(context.Background()))
	assert.False(t, m.IsOnline(), "Probe does not change monitor state")
}

func TestProber_CheckUpdatesMonitor(t *testing.T) {
	pinger := &fakePinger{}
	m := NewMonitor(false, nil, testLogger())
	p := NewProber(pinger, m, time.Second, testLogger())

	assert.True(t, p.Check(context.Background()))
	assert.True(t, m.IsOnline())
	assert.Equal(t, "http", m.NetworkInfo().Type)
	assert.Equal(t, 1, m.PendingReplays())

	pinger.fail.Store(true)
	assert.False(t, p.Check(context.Background()))
	assert.False(t, m.IsOnline())
}

func TestProber_Start(t *testing.T) {
	pinger := &fakePinger{}
	m := NewMonitor(false, nil, testLogger())
	p := NewProber(pinger, m, 10*time.Millisecond, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	require.Eventually(t, m.IsOnline, time.Second, 5*time.Millisecond)
	pinger.fail.Store(true)
	require.Eventually(t, func() bool { return !m.IsOnline() }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not stop after cancel")
	}
}
