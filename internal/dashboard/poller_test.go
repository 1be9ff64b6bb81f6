package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/life2you_mini/tradedash/internal/dashboard"
)

func TestPoller_ImmediateFirstPoll(t *testing.T) {
	view := &countingView{}
	poller := dashboard.NewPoller(view, time.Hour, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Start(ctx) }()

	require.Eventually(t, func() bool { return view.refreshes.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("轮询没有停止")
	}
	assert.Equal(t, int32(1), view.refreshes.Load())
}

func TestPoller_Ticks(t *testing.T) {
	view := &countingView{}
	poller := dashboard.NewPoller(view, 10*time.Millisecond, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- poller.Start(ctx) }()

	require.Eventually(t, func() bool { return view.refreshes.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	stopped := view.refreshes.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, view.refreshes.Load(), "停止后不再刷新")
}
