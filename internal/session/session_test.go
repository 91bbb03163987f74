package session_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Sumatoshi-tech/difr/internal/observability"
	"github.com/Sumatoshi-tech/difr/internal/session"
	"github.com/Sumatoshi-tech/difr/internal/source"
	"github.com/Sumatoshi-tech/difr/pkg/linecmp"
)

func newLoader(t *testing.T, files map[string]string) *source.Loader {
	t.Helper()

	fsys := memfs.New()

	for name, content := range files {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o600))
	}

	return source.NewLoader(fsys, "/")
}

func newRunner(t *testing.T, loader *source.Loader, options linecmp.Config) *session.Runner {
	t.Helper()

	runner, err := session.NewRunner(loader, options, session.Deps{})
	require.NoError(t, err)

	return runner
}

func TestRun_SingleMismatch(t *testing.T) {
	t.Parallel()

	loader := newLoader(t, map[string]string{"/a": "a\nb\nc\n", "/b": "a\nx\nc\n"})

	res, err := newRunner(t, loader, linecmp.Config{}).Run(context.Background(), "/a", "/b")
	require.NoError(t, err)

	assert.Equal(t, session.StrategyLines, res.Strategy)
	assert.False(t, res.Equal)
	require.NotNil(t, res.Report)

	diffs := res.Report.Differences()
	require.Len(t, diffs, 1)
	assert.Equal(t, linecmp.KindMismatch, diffs[0].Kind)
	assert.Equal(t, 2, diffs[0].Position)
	assert.Equal(t, "b", diffs[0].Left.Text)
	assert.Equal(t, "x", diffs[0].Right.Text)

	assert.Equal(t, 3, res.Left.Lines)
	assert.Equal(t, int64(6), res.Left.Size)
	assert.True(t, res.Left.Text)
	assert.NotEqual(t, res.Left.Digest, res.Right.Digest)
}

func TestRun_RightLonger(t *testing.T) {
	t.Parallel()

	loader := newLoader(t, map[string]string{"/a": "a\nb\n", "/b": "a\nb\nc\nd\n"})

	res, err := newRunner(t, loader, linecmp.Config{}).Run(context.Background(), "/a", "/b")
	require.NoError(t, err)

	ev, ok := res.Report.Exhaustion()
	require.True(t, ok)
	assert.Equal(t, linecmp.KindLeftExhausted, ev.Kind)
	assert.Equal(t, 3, ev.Position)
	assert.Equal(t, []string{"c", "d"}, ev.Tail.Texts())
}

func TestRun_EmptyFilesAreEqual(t *testing.T) {
	t.Parallel()

	loader := newLoader(t, map[string]string{"/a": "", "/b": ""})

	res, err := newRunner(t, loader, linecmp.Config{}).Run(context.Background(), "/a", "/b")
	require.NoError(t, err)

	assert.True(t, res.Equal)
	assert.Equal(t, session.StrategyDigest, res.Strategy)
	assert.Nil(t, res.Report)
}

func TestRun_IdenticalContentShortCircuits(t *testing.T) {
	t.Parallel()

	loader := newLoader(t, map[string]string{"/a": "same\ncontent\n", "/b": "same\ncontent\n"})

	res, err := newRunner(t, loader, linecmp.Config{}).Run(context.Background(), "/a", "/b")
	require.NoError(t, err)

	assert.True(t, res.Equal)
	assert.Equal(t, session.StrategyDigest, res.Strategy)
	assert.Nil(t, res.Report)
	assert.Equal(t, res.Left.Digest, res.Right.Digest)
}

func TestRun_FilteredEqual(t *testing.T) {
	t.Parallel()

	loader := newLoader(t, map[string]string{"/a": "a\n\nb\n", "/b": "a\nb\n"})

	res, err := newRunner(t, loader, linecmp.Config{ExcludeEmptyLines: true}).Run(context.Background(), "/a", "/b")
	require.NoError(t, err)

	assert.Equal(t, session.StrategyLines, res.Strategy)
	assert.True(t, res.Equal)
	assert.True(t, res.Options.ExcludeEmptyLines)
}

func TestRun_BinaryFallsBackToDigest(t *testing.T) {
	t.Parallel()

	loader := newLoader(t, map[string]string{
		"/img1": "\xff\xfe\x00\x01binary",
		"/img2": "\xff\xfe\x00\x02binary",
		"/txt":  "text\n",
	})

	runner := newRunner(t, loader, linecmp.Config{})

	res, err := runner.Run(context.Background(), "/img1", "/img2")
	require.NoError(t, err)
	assert.True(t, res.Binary())
	assert.False(t, res.Equal)
	assert.Equal(t, session.StrategyDigest, res.Strategy)
	assert.Nil(t, res.Report)
	assert.Zero(t, res.Left.Lines)

	res, err = runner.Run(context.Background(), "/img1", "/img1")
	require.NoError(t, err)
	assert.True(t, res.Equal)

	res, err = runner.Run(context.Background(), "/txt", "/img1")
	require.NoError(t, err)
	assert.True(t, res.Binary())
	assert.True(t, res.Left.Text)
	assert.False(t, res.Right.Text)
	assert.False(t, res.Equal)
}

func TestRun_RuneCutBySampleUsesDigest(t *testing.T) {
	t.Parallel()

	prefix := strings.Repeat("a", 31)
	loader := newLoader(t, map[string]string{
		"/euro":   prefix + "€\n",
		"/binary": prefix + "\xe2\xff\xfe\x00\x01",
	})

	res, err := newRunner(t, loader, linecmp.Config{}).Run(context.Background(), "/euro", "/binary")
	require.NoError(t, err)
	assert.Equal(t, session.StrategyDigest, res.Strategy)
	assert.False(t, res.Left.Text)
	assert.False(t, res.Right.Text)
	assert.False(t, res.Equal)
	assert.Nil(t, res.Report)
}

func TestRun_DecodeErrorAfterSample(t *testing.T) {
	t.Parallel()

	loader := newLoader(t, map[string]string{
		"/late": "0123456789012345678901234567890123456789\xff\n",
		"/ok":   "fine\n",
	})

	_, err := newRunner(t, loader, linecmp.Config{}).Run(context.Background(), "/late", "/ok")
	require.ErrorIs(t, err, source.ErrDecode)
}

func TestRun_MissingFile(t *testing.T) {
	t.Parallel()

	loader := newLoader(t, map[string]string{"/a": "x"})

	_, err := newRunner(t, loader, linecmp.Config{}).Run(context.Background(), "/a", "/missing")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewRunner_InvalidRange(t *testing.T) {
	t.Parallel()

	_, err := session.NewRunner(newLoader(t, nil), linecmp.Config{Range: &linecmp.Range{From: 0}}, session.Deps{})
	require.ErrorIs(t, err, linecmp.ErrInvalidRange)
}

func TestRun_RecordsMetricsAndLogs(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := observability.NewComparisonMetrics(mp.Meter("test"))
	require.NoError(t, err)

	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	loader := newLoader(t, map[string]string{"/a": "1\n2\n", "/b": "1\n3\n"})

	runner, err := session.NewRunner(loader, linecmp.Config{}, session.Deps{Logger: logger, Metrics: metrics})
	require.NoError(t, err)

	_, err = runner.Run(context.Background(), "/a", "/b")
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)
	assert.Contains(t, logs.String(), "comparison finished")
	assert.Contains(t, logs.String(), "strategy=lines")
}
