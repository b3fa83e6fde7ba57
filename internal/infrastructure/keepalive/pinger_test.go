package keepalive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ressKim-io/fraudlens/internal/infrastructure/config"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/metrics"
)

func newTestPinger(url string, interval time.Duration) *Pinger {
	return NewPinger(&config.KeepAliveConfig{
		Enabled:  true,
		URL:      url,
		Path:     "/keep-alive",
		Interval: interval,
		Timeout:  time.Second,
	}, zap.NewNop())
}

func TestPinger_PingsImmediatelyAndRepeatedly(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/keep-alive", r.URL.Path)
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := newTestPinger(server.URL+"/", 20*time.Millisecond)
	assert.Equal(t, server.URL+"/keep-alive", p.target)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return hits.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	select {
	case <-done:
		t.Fatal("pinger returned before cancel")
	default:
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pinger did not stop after cancel")
	}
}

func TestPinger_FirstPingBeforeInterval(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	p := newTestPinger(server.URL, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Start(ctx)

	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestPinger_FailuresAreSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	failures := metrics.KeepAlivePingsTotal.WithLabelValues(ResultFailure)
	before := testutil.ToFloat64(failures)

	p := newTestPinger(server.URL, time.Hour)
	p.safePing(context.Background())

	assert.Equal(t, before+1, testutil.ToFloat64(failures))
}

func TestPinger_Ping(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"alive"}`))
		}))
		defer server.Close()

		assert.NoError(t, newTestPinger(server.URL, time.Hour).ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		assert.Error(t, newTestPinger("http://localhost:99999", time.Hour).ping(context.Background()))
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		p := newTestPinger(server.URL, time.Hour)
		p.timeout = 20 * time.Millisecond

		assert.Error(t, p.ping(context.Background()))
	})
}
