package parallel

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/locallibrary/catalog/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(v any, delay time.Duration) Lookup {
	return func(ctx context.Context) (any, error) {
		select {
		case <-time.After(delay):
			return v, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func TestRun_JoinsAllResults(t *testing.T) {
	t.Parallel()

	results, err := Run(context.Background(), map[string]Lookup{
		"slow":   value(1, 30*time.Millisecond),
		"fast":   value("two", 0),
		"medium": value([]int{3}, 10*time.Millisecond),
	})
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 1, Get[int](results, "slow"))
	assert.Equal(t, "two", Get[string](results, "fast"))
	assert.Equal(t, []int{3}, Get[[]int](results, "medium"))
}

func TestRun_RunsConcurrently(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	lookup := func(ctx context.Context) (any, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		running.Add(-1)
		return nil, nil
	}

	_, err := Run(context.Background(), map[string]Lookup{
		"a": lookup, "b": lookup, "c": lookup, "d": lookup, "e": lookup,
	})
	require.NoError(t, err)
	assert.Greater(t, peak.Load(), int32(1))
}

func TestRun_FirstErrorCancelsSiblings(t *testing.T) {
	t.Parallel()

	var cancelled atomic.Bool
	results, err := Run(context.Background(), map[string]Lookup{
		"ok": value(1, 0),
		"missing": func(context.Context) (any, error) {
			return nil, errcodes.NotFound("Book")
		},
		"stuck": func(ctx context.Context) (any, error) {
			select {
			case <-ctx.Done():
				cancelled.Store(true)
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return nil, nil
			}
		},
	})
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
	assert.True(t, cancelled.Load())
}

func TestRun_SingleAndEmpty(t *testing.T) {
	t.Parallel()

	results, err := Run(context.Background(), map[string]Lookup{"only": value(true, 0)})
	require.NoError(t, err)
	assert.True(t, Get[bool](results, "only"))

	results, err = Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGet_WrongType(t *testing.T) {
	t.Parallel()

	r := Results{"count": 3}
	assert.Equal(t, "", Get[string](r, "count"))
	assert.Equal(t, 0, Get[int](r, "absent"))
	assert.Equal(t, 3, Get[int](r, "count"))
}

func TestRun_WrapsPlainErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Run(context.Background(), map[string]Lookup{
		"a": func(context.Context) (any, error) { return nil, boom },
	})
	assert.ErrorIs(t, err, boom)
}
