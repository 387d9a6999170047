package status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dingolabs/dingo/internal/api"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &api.Client{BaseURL: server.URL + "/api/v1", HTTPClient: server.Client()}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Badge
	}{
		{name: "operational", status: http.StatusOK, body: `{"status":"operational"}`, want: BadgeOperational},
		{name: "healthy", status: http.StatusOK, body: `{"status":"healthy"}`, want: BadgeOperational},
		{name: "mixed case", status: http.StatusOK, body: `{"status":"Healthy"}`, want: BadgeOperational},
		{name: "degraded", status: http.StatusOK, body: `{"status":"degraded"}`, want: BadgeOffline},
		{name: "missing status", status: http.StatusOK, body: `{}`, want: BadgeOffline},
		{name: "non-string status", status: http.StatusOK, body: `{"status":true}`, want: BadgeOffline},
		{name: "not an object", status: http.StatusOK, body: `["operational"]`, want: BadgeOffline},
		{name: "invalid json", status: http.StatusOK, body: `operational`, want: BadgeOffline},
		{name: "server error", status: http.StatusServiceUnavailable, body: `{"status":"operational"}`, want: BadgeOffline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			require.Equal(t, tt.want, Check(context.Background(), client))
			require.Equal(t, "/api/v1/status", path)
		})
	}
}

func TestCheckUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	client := &api.Client{BaseURL: base}
	require.Equal(t, BadgeOffline, Check(context.Background(), client))
}

func TestRunOnce(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"operational"}`))
	})

	var badges []Badge
	Run(context.Background(), client, 0, func(b Badge) { badges = append(badges, b) })
	require.Equal(t, []Badge{BadgeOperational}, badges)
}

func TestRunRepeatsUntilCancelled(t *testing.T) {
	var hits atomic.Int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) >= 3 {
			_, _ = w.Write([]byte(`{"status":"down"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	badges := make(chan Badge, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, client, 5*time.Millisecond, func(b Badge) {
			badges <- b
			if len(badges) >= 3 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	cancel()
	close(badges)

	var got []Badge
	for b := range badges {
		got = append(got, b)
	}
	require.GreaterOrEqual(t, len(got), 3)
	require.Equal(t, BadgeOperational, got[0])
	require.Equal(t, BadgeOffline, got[2])
}
