package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lagopus-go/dsinterp/internal/result"
)

func TestPutGetFIFOOrder(t *testing.T) {
	q, err := New[int](4, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, q.Put(ctx, 1))
	require.NoError(t, q.Put(ctx, 2))
	require.Equal(t, 2, q.Size())

	v, err := q.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)
	v, err = q.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestPeekLeavesValueQueued(t *testing.T) {
	q, err := New[string](2, nil)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, q.Put(ctx, "a"))

	v, err := q.Peek(ctx)
	require.NoError(t, err)
	require.Equal(t, "a", v)
	require.Equal(t, 1, q.Size())
}

func TestPutBlocksUntilCapacityFrees(t *testing.T) {
	q, err := New[int](1, nil)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, q.Put(ctx, 1))
	require.True(t, q.IsFull())

	done := make(chan error, 1)
	go func() { done <- q.Put(ctx, 2) }()

	time.Sleep(20 * time.Millisecond)
	v, err := q.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	require.NoError(t, <-done)
	require.Equal(t, 1, q.Size())
}

func TestGetTimesOutOnDeadline(t *testing.T) {
	q, err := New[int](1, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = q.Get(ctx)
	require.True(t, errors.Is(err, result.New(result.Timedout)))
}

func TestShutdownDrainsThenStops(t *testing.T) {
	q, err := New[int](4, nil)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, q.Put(ctx, 1))
	q.Shutdown()
	require.False(t, q.IsOperational())

	v, err := q.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	_, err = q.Get(ctx)
	require.True(t, errors.Is(err, result.New(result.Stopped)))

	err = q.Put(ctx, 2)
	require.True(t, errors.Is(err, result.New(result.Stopped)))
}

func TestDestroyInvokesFreeAndDisablesQueue(t *testing.T) {
	var freed []int
	q, err := New[int](4, func(v int) { freed = append(freed, v) })
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, q.Put(ctx, 1))
	require.NoError(t, q.Put(ctx, 2))

	q.Destroy()
	require.Equal(t, []int{1, 2}, freed)

	_, err = q.Get(ctx)
	require.True(t, errors.Is(err, result.New(result.NotOperational)))
}

func TestClearInvokesFreeButKeepsQueueOperational(t *testing.T) {
	var freed []int
	q, err := New[int](4, func(v int) { freed = append(freed, v) })
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, q.Put(ctx, 1))

	q.Clear()
	require.Equal(t, []int{1}, freed)
	require.True(t, q.IsEmpty())
	require.True(t, q.IsOperational())
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	_, err := New[int](0, nil)
	require.True(t, errors.Is(err, result.New(result.InvalidArgs)))
}
