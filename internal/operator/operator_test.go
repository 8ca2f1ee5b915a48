package operator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bank-server/internal/storage"
)

type fakeTx struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
	commitErr error
}

func (f *fakeTx) Commit(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits++
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rollbacks++
	return nil
}

type fakeStorage struct {
	tx       *fakeTx
	writeErr error
}

func (f *fakeStorage) Write(context.Context) (*storage.Writer, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &storage.Writer{Tx: f.tx}, nil
}

type funcAction func(ctx context.Context, writer *storage.Writer) error

func (f funcAction) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

func newTestDelegator(t *testing.T, s *fakeStorage, workers int) *OperatorDelegator {
	t.Helper()
	d := NewOperatorDelegator(s, workers)
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	s := &fakeStorage{tx: &fakeTx{}}
	d := newTestDelegator(t, s, 2)

	called := false
	err := d.Process(context.Background(), funcAction(func(ctx context.Context, w *storage.Writer) error {
		called = true
		return nil
	}))

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 1, s.tx.commits)
	assert.Equal(t, 0, s.tx.rollbacks)
}

func TestProcess_RollsBackOnError(t *testing.T) {
	s := &fakeStorage{tx: &fakeTx{}}
	d := newTestDelegator(t, s, 1)

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return errors.New("insufficient funds")
	}))

	assert.EqualError(t, err, "insufficient funds")
	assert.Equal(t, 0, s.tx.commits)
	assert.Equal(t, 1, s.tx.rollbacks)
}

func TestProcess_CommitError(t *testing.T) {
	s := &fakeStorage{tx: &fakeTx{commitErr: errors.New("serialization failure")}}
	d := newTestDelegator(t, s, 1)

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error { return nil }))
	assert.EqualError(t, err, "serialization failure")
}

func TestProcess_WriteError(t *testing.T) {
	s := &fakeStorage{writeErr: errors.New("pool exhausted")}
	d := newTestDelegator(t, s, 1)

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		t.Fatal("action must not run without a writer")
		return nil
	}))
	assert.EqualError(t, err, "pool exhausted")
}

func TestProcess_ContextCancelled(t *testing.T) {
	s := &fakeStorage{tx: &fakeTx{}}
	d := newTestDelegator(t, s, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
			close(started)
			<-release
			return nil
		}))
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Process(ctx, funcAction(func(context.Context, *storage.Writer) error { return nil }))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
}

func TestProcess_AfterStop(t *testing.T) {
	d := NewOperatorDelegator(&fakeStorage{tx: &fakeTx{}}, 1)
	d.Start()
	d.Stop()

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error { return nil }))
	assert.ErrorIs(t, err, ErrStopped)
}

func TestNewOperatorDelegator_MinimumOneWorker(t *testing.T) {
	d := NewOperatorDelegator(&fakeStorage{}, 0)
	assert.Equal(t, 1, d.numWorkers)
}
