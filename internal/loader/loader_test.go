package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.md")
	require.NoError(t, os.WriteFile(path, []byte("## Question 001\n"), 0644))

	got, err := New().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "## Question 001\n", got)
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open document")
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("## Question 001\n"))
	}))
	defer srv.Close()

	got, err := New().Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "## Question 001\n", got)
}

func TestLoad_RetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	l := New(WithRetry(fastRetry(3)))
	got, err := l.Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)
	assert.Equal(t, 3, calls)
}

func TestLoad_NoRetryOnClientError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	l := New(WithRetry(fastRetry(3)))
	_, err := l.Load(context.Background(), srv.URL)
	require.Error(t, err)

	var status *ErrHTTPStatus
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusNotFound, status.Code)
	assert.Equal(t, 1, calls, "4xx responses must not be retried")
}

func TestLoad_RetriesExhausted(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := New(WithRetry(fastRetry(3)))
	_, err := l.Load(context.Background(), srv.URL)
	require.Error(t, err)

	var status *ErrHTTPStatus
	assert.ErrorAs(t, err, &status)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestLoad_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("never seen"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithRetry(fastRetry(3))).Load(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
