package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
)

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var resp statusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestProbeFailureThreshold(t *testing.T) {
	ctx := context.Background()
	failing := true
	p := &probe{name: "db", timeout: time.Second, fn: func(context.Context) error {
		if failing {
			return errors.New("connection refused")
		}
		return nil
	}}

	// Below the threshold the probe still reports healthy.
	p.sample(ctx)
	p.sample(ctx)
	_, down := p.failure()
	require.False(t, down)

	p.sample(ctx)
	msg, down := p.failure()
	require.True(t, down)
	require.Equal(t, "connection refused", msg)

	// A single success recovers and resets the failure streak.
	failing = false
	p.sample(ctx)
	_, down = p.failure()
	require.False(t, down)

	failing = true
	p.sample(ctx)
	p.sample(ctx)
	_, down = p.failure()
	require.False(t, down)
}

func TestProbeTimeout(t *testing.T) {
	p := &probe{name: "slow", timeout: 10 * time.Millisecond, fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	for range failureThreshold {
		p.sample(context.Background())
	}
	_, down := p.failure()
	require.True(t, down)
}

func TestLiveEndpoint(t *testing.T) {
	h := New()
	h.AddLivenessCheck("goroutines", time.Second, GoroutineCountCheck(100000))

	h.mu.Lock()
	live := h.liveness
	h.mu.Unlock()
	sampleAll(context.Background(), live)

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decodeStatus(t, rec)
	require.Equal(t, "ok", resp.Status)
	require.Empty(t, resp.Checks)
}

func TestLiveEndpointUnhealthy(t *testing.T) {
	h := New()
	h.AddLivenessCheck("goroutines", time.Second, GoroutineCountCheck(0))

	h.mu.Lock()
	live := h.liveness
	h.mu.Unlock()
	for range failureThreshold {
		sampleAll(context.Background(), live)
	}

	rec := httptest.NewRecorder()
	h.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeStatus(t, rec)
	require.Equal(t, "unhealthy", resp.Status)
	require.Contains(t, resp.Checks, "goroutines")
}

func TestReadyEndpointGatedOnSetReady(t *testing.T) {
	h := New()
	h.AddReadinessCheck("postgres", time.Second, func(context.Context) error {
		return nil
	})

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	// Healthy checks alone are not enough before SetReady(true).
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeStatus(t, rec)
	require.Equal(t, "unhealthy", resp.Status)
	require.Equal(t, "service is not ready", resp.Checks["_readiness"])
	require.False(t, h.IsReady())

	h.SetReady(true)
	rec = httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeStatus(t, rec).Status)
	require.True(t, h.IsReady())
}

func TestReadyEndpointFailingDependency(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.AddReadinessCheck("postgres", time.Second, func(context.Context) error {
		return errors.New("dial tcp: connection refused")
	})

	h.mu.Lock()
	ready := h.readiness
	h.mu.Unlock()
	for range failureThreshold {
		sampleAll(context.Background(), ready)
	}

	rec := httptest.NewRecorder()
	h.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeStatus(t, rec)
	require.Equal(t, "unhealthy", resp.Status)
	require.Equal(t, "dial tcp: connection refused", resp.Checks["postgres"])
	require.False(t, h.IsReady())
}

func TestStartSamplesImmediately(t *testing.T) {
	h := New()
	sampled := make(chan struct{})
	h.AddReadinessCheck("postgres", time.Second, func(context.Context) error {
		select {
		case sampled <- struct{}{}:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Start(ctx, time.Hour)
	defer h.Stop()

	select {
	case <-sampled:
	case <-time.After(2 * time.Second):
		t.Fatal("check was not sampled after Start")
	}
}

func TestStopHaltsSampling(t *testing.T) {
	h := New()
	samples := make(chan struct{}, 16)
	h.AddLivenessCheck("tick", time.Second, func(context.Context) error {
		samples <- struct{}{}
		return nil
	})

	h.Start(context.Background(), 5*time.Millisecond)

	select {
	case <-samples:
	case <-time.After(2 * time.Second):
		t.Fatal("check was not sampled after Start")
	}

	h.Stop()
	h.Stop() // idempotent

	// Drain anything in flight, then verify the ticker is gone.
	time.Sleep(20 * time.Millisecond)
	for len(samples) > 0 {
		<-samples
	}
	select {
	case <-samples:
		t.Fatal("check sampled after Stop")
	case <-time.After(30 * time.Millisecond):
	}
}

func TestGoroutineCountCheck(t *testing.T) {
	require.NoError(t, GoroutineCountCheck(100000)(context.Background()))

	err := GoroutineCountCheck(0)(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds threshold")
}
