package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/alphafounders/site/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	ctx := logging.WithAttrs(context.Background(), slog.String("proto", "HTTP/1.1"))
	ctx = logging.WithAttrs(ctx, slog.String("uri", "/diagnostic"))
	logger.With(slog.String("component", "web")).InfoContext(ctx, "received request")

	out := buf.String()
	require.Contains(t, out, "proto=HTTP/1.1")
	require.Contains(t, out, "uri=/diagnostic")
	require.Contains(t, out, "component=web")
}

func TestWithAttrsDoesNotShareBacking(t *testing.T) {
	parent := logging.WithAttrs(context.Background(), slog.Int("a", 1), slog.Int("b", 2))
	left := logging.WithAttrs(parent, slog.Int("left", 1))
	right := logging.WithAttrs(parent, slog.Int("right", 1))

	require.Len(t, logging.Attrs(parent), 2)
	require.Equal(t, "left", logging.Attrs(left)[2].Key)
	require.Equal(t, "right", logging.Attrs(right)[2].Key)
}
