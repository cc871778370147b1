package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mark("a"), mark("b"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := Chain(RequestID, Logging(zap.New(core)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/predict", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "http request completed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "/predict", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(15), fields["bytes"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRecovery(t *testing.T) {
	h := Recovery(zaptest.NewLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNew_RequiresHandler(t *testing.T) {
	_, err := New(WithPort(0))
	assert.ErrorContains(t, err, "handler is required")
}

func TestNew_InvalidPort(t *testing.T) {
	_, err := New(WithPort(-1), WithHandler(http.NotFoundHandler()))
	assert.Error(t, err)
}

func TestServer_StartShutdown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})

	srv, err := New(
		WithHost("127.0.0.1"),
		WithPort(0),
		WithLogger(zaptest.NewLogger(t)),
		WithHandler(mux),
	)
	require.NoError(t, err)

	errCh := srv.Start()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + srv.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	client.CloseIdleConnections()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", strings.TrimSpace(string(body)))
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	_, open := <-errCh
	assert.False(t, open)
}

func TestServer_PanicIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	srv, err := New(
		WithHost("127.0.0.1"),
		WithPort(0),
		WithLogger(zap.New(core)),
		WithHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	failed := logs.FilterMessage("http request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, int64(http.StatusInternalServerError), failed[0].ContextMap()["status"])
	assert.Equal(t, "/boom", failed[0].ContextMap()["path"])
}

func TestServer_ShutdownWithoutStartReleasesListener(t *testing.T) {
	srv, err := New(WithHost("127.0.0.1"), WithPort(0), WithHandler(http.NotFoundHandler()))
	require.NoError(t, err)
	addr := srv.Addr().String()

	require.NoError(t, srv.Shutdown(context.Background()))

	lis, err := net.Listen("tcp", addr)
	require.NoError(t, err, "address still held after Shutdown")
	lis.Close()
}
