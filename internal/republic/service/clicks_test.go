package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/republichq/republic/internal/republic/domain"
	"github.com/republichq/republic/internal/republic/service"
	"github.com/republichq/republic/pkg/metricsx"
)

func TestIncrement(t *testing.T) {
	ctx := context.Background()
	svc := &service.ClickService{Store: newStore(t), Metrics: metricsx.New(prometheus.NewRegistry())}

	n, err := svc.Count(ctx, domain.ContactAdvertiserClick)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, svc.Increment(ctx, domain.ContactAdvertiserClick))
	require.NoError(t, svc.Increment(ctx, "  "+domain.ContactAdvertiserClick+" "))

	n, err = svc.Count(ctx, domain.ContactAdvertiserClick)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	n, err = svc.Count(ctx, "never_seen")
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, svc.Increment(ctx, "new_event"))
	n, err = svc.Count(ctx, "new_event")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestIncrementRejectsBadNames(t *testing.T) {
	svc := &service.ClickService{Store: newStore(t)}
	for _, name := range []string{"", "   ", strings.Repeat("x", service.MaxEventNameLen+1)} {
		require.ErrorIs(t, svc.Increment(context.Background(), name), service.ErrInvalidEvent)
	}
}

func TestIncrementConcurrent(t *testing.T) {
	ctx := context.Background()
	svc := &service.ClickService{Store: newStore(t)}

	const n = 64
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Increment(ctx, "hot_event")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := svc.Count(ctx, "hot_event")
	require.NoError(t, err)
	require.Equal(t, int64(n), got)
}

func TestIncrementStorageFailure(t *testing.T) {
	st := newStore(t)
	svc := &service.ClickService{Store: st}
	require.NoError(t, st.Close())

	require.ErrorIs(t, svc.Increment(context.Background(), "x"), service.ErrStorage)
}
