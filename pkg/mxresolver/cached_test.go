package mxresolver_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubiconsolutions/guardion/pkg/logger"
	"github.com/rubiconsolutions/guardion/pkg/mxresolver"
)

type countingResolver struct {
	calls atomic.Int32
	next  mxresolver.Resolver
}

func (c *countingResolver) LookupMX(ctx context.Context, domain string, timeout time.Duration) ([]string, error) {
	c.calls.Add(1)
	return c.next.LookupMX(ctx, domain, timeout)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (mxresolver.Entry, bool, error) {
	return mxresolver.Entry{}, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, mxresolver.Entry, time.Duration) error {
	return errors.New("store down")
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	static := mxresolver.Static{
		"example.com": {Hosts: []string{"mx.example.com"}},
		"flaky.test":  {Err: mxresolver.ErrTransient},
		"slow.test":   {Err: mxresolver.ErrTimeout},
	}

	t.Run("caches positive answers", func(t *testing.T) {
		next := &countingResolver{next: static}
		r := mxresolver.NewCached(next, mxresolver.NewLRUStore(8))

		for range 3 {
			hosts, err := r.LookupMX(ctx, "Example.COM.", time.Second)
			require.NoError(t, err)
			assert.Equal(t, []string{"mx.example.com"}, hosts)
		}
		assert.Equal(t, int32(1), next.calls.Load())
	})

	t.Run("caches not found", func(t *testing.T) {
		next := &countingResolver{next: static}
		r := mxresolver.NewCached(next, mxresolver.NewLRUStore(8))

		_, err := r.LookupMX(ctx, "missing.test", time.Second)
		assert.ErrorIs(t, err, mxresolver.ErrNotFound)
		_, err = r.LookupMX(ctx, "missing.test", time.Second)
		assert.ErrorIs(t, err, mxresolver.ErrNotFound)
		assert.Equal(t, int32(1), next.calls.Load())
	})

	t.Run("negative caching can be disabled", func(t *testing.T) {
		next := &countingResolver{next: static}
		r := mxresolver.NewCached(next, mxresolver.NewLRUStore(8), mxresolver.WithNegativeTTL(0))

		_, _ = r.LookupMX(ctx, "missing.test", time.Second)
		_, _ = r.LookupMX(ctx, "missing.test", time.Second)
		assert.Equal(t, int32(2), next.calls.Load())
	})

	t.Run("never caches degraded outcomes", func(t *testing.T) {
		next := &countingResolver{next: static}
		r := mxresolver.NewCached(next, mxresolver.NewLRUStore(8))

		for _, domain := range []string{"flaky.test", "slow.test", "flaky.test", "slow.test"} {
			_, err := r.LookupMX(ctx, domain, time.Second)
			require.Error(t, err)
			assert.NotErrorIs(t, err, mxresolver.ErrNotFound)
		}
		assert.Equal(t, int32(4), next.calls.Load())
	})

	t.Run("store failures fall through", func(t *testing.T) {
		next := &countingResolver{next: static}
		r := mxresolver.NewCached(next, failingStore{}, mxresolver.WithCacheLogger(logger.Discard()))

		hosts, err := r.LookupMX(ctx, "example.com", time.Second)
		require.NoError(t, err)
		assert.Equal(t, []string{"mx.example.com"}, hosts)
	})

	t.Run("returned hosts are copies", func(t *testing.T) {
		r := mxresolver.NewCached(static, mxresolver.NewLRUStore(8))

		hosts, err := r.LookupMX(ctx, "example.com", time.Second)
		require.NoError(t, err)
		hosts[0] = "mutated"

		hosts, err = r.LookupMX(ctx, "example.com", time.Second)
		require.NoError(t, err)
		assert.Equal(t, "mx.example.com", hosts[0])
	})
}
