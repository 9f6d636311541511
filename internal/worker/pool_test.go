package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wortflash/internal/gateway"
	"github.com/vytor/wortflash/internal/testutil/mocks"
	"github.com/vytor/wortflash/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_DoReturnsJobError(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	defer p.Stop()

	boom := errors.New("boom")
	err := p.Do(context.Background(), funcJob{name: "fail", fn: func(context.Context) error { return boom }})
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, p.Do(context.Background(), funcJob{name: "ok", fn: func(context.Context) error { return nil }}))
}

func TestPool_BoundsConcurrency(t *testing.T) {
	p := worker.NewPool(2, 8)
	p.Start(context.Background())
	defer p.Stop()

	var running, peak atomic.Int32
	job := funcJob{name: "slow", fn: func(context.Context) error {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return nil
	}}

	errs := make(chan error, 6)
	for i := 0; i < 6; i++ {
		go func() { errs <- p.Do(context.Background(), job) }()
	}
	for i := 0; i < 6; i++ {
		require.NoError(t, <-errs)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPool_DoHonorsCallerCancellation(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	defer p.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Do(ctx, funcJob{name: "wait", fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_StoppedPoolRefusesWork(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	noop := funcJob{name: "noop", fn: func(context.Context) error { return nil }}
	assert.ErrorIs(t, p.Do(context.Background(), noop), worker.ErrPoolStopped)
}

func TestCompletionJob_StoresOutput(t *testing.T) {
	completer := new(mocks.MockCompleter)
	msgs := []gateway.Message{{Role: gateway.RoleUser, Content: "Hallo"}}
	completer.On("Complete", mock.Anything, msgs).Return("Hallo!", nil)

	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	defer p.Stop()

	job := &worker.CompletionJob{Completer: completer, Messages: msgs, Label: "chat"}
	require.NoError(t, p.Do(context.Background(), job))
	assert.Equal(t, "Hallo!", job.Output)
	assert.Equal(t, "chat", job.Name())
	completer.AssertExpectations(t)
}
