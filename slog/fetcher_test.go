package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/crawld"
	"github.com/fwojciec/crawld/mock"
	crawlslog "github.com/fwojciec/crawld/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with size and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*crawld.Response, error) {
				return &crawld.Response{StatusCode: 200, Body: []byte("hello")}, nil
			},
		}

		f := crawlslog.NewLoggingFetcher(inner, logger)
		resp, err := f.Fetch(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/")
		assert.Contains(t, output, "bytes=5")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs fetch errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*crawld.Response, error) {
				return nil, errors.New("connection refused")
			},
		}

		f := crawlslog.NewLoggingFetcher(inner, logger)
		_, err := f.Fetch(context.Background(), "https://example.com/")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "connection refused")
	})
}

func TestLoggingFrontierStore_logs_scope_operations(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.FrontierStore{
		PausePrefixFn: func(ctx context.Context, prefix, reason string) (int, error) {
			return 3, nil
		},
		ResumePrefixFn: func(ctx context.Context, prefix string) ([]string, int, error) {
			return []string{"https://example.com/a"}, 1, nil
		},
		ResumeAllFn: func(ctx context.Context) ([]string, error) {
			return []string{"https://example.com/a", "https://example.com/b"}, nil
		},
	}

	s := crawlslog.NewLoggingFrontierStore(inner, logger)
	ctx := context.Background()

	n, err := s.PausePrefix(ctx, "https://example.com/docs", "maintenance")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, buf.String(), "pause prefix")
	assert.Contains(t, buf.String(), "count=3")
	assert.Contains(t, buf.String(), "reason=maintenance")

	buf.Reset()
	_, n, err = s.ResumePrefix(ctx, "https://example.com/docs")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "resume prefix")
	assert.Contains(t, buf.String(), "count=1")

	buf.Reset()
	urls, err := s.ResumeAll(ctx)
	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Contains(t, buf.String(), "resume all")
	assert.Contains(t, buf.String(), "count=2")
}
