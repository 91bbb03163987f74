// Package session runs one comparison of two files: classification, loading,
// the digest short-circuit and the positional line walk.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/difr/internal/observability"
	"github.com/Sumatoshi-tech/difr/internal/source"
	"github.com/Sumatoshi-tech/difr/pkg/digest"
	"github.com/Sumatoshi-tech/difr/pkg/linecmp"
)

// spanCompare is the span covering one Run.
const spanCompare = "difr.compare"

// ErrFilesDiffer is returned by callers that opted into a failing exit
// status when the compared files are not equal.
var ErrFilesDiffer = errors.New("files differ")

// Strategy names how equality was decided.
type Strategy string

const (
	// StrategyLines means the line comparator produced the report.
	StrategyLines Strategy = "lines"
	// StrategyDigest means equality was decided from whole-content digests
	// only, either because an input is binary or because the digests matched.
	StrategyDigest Strategy = "digest"
)

// FileInfo describes one compared file.
type FileInfo struct {
	Path     string `json:"path"               yaml:"path"`
	Size     int64  `json:"size"               yaml:"size"`
	Lines    int    `json:"lines"              yaml:"lines"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Digest   string `json:"digest"             yaml:"digest"`
	Text     bool   `json:"text"               yaml:"text"`
}

// Result is the outcome of one Run.
type Result struct {
	Left     FileInfo
	Right    FileInfo
	Strategy Strategy
	Equal    bool
	// Report is nil unless Strategy is StrategyLines.
	Report  *linecmp.Report
	Options linecmp.Config
}

// Binary reports whether at least one input was classified as binary.
func (r *Result) Binary() bool {
	return !r.Left.Text || !r.Right.Text
}

// Deps holds injectable dependencies for a Runner.
// Zero-value fields use no-op defaults.
type Deps struct {
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.ComparisonMetrics
}

// Runner compares pairs of files.
type Runner struct {
	loader     *source.Loader
	comparator *linecmp.Comparator
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *observability.ComparisonMetrics
}

// NewRunner creates a Runner. The options are validated up front so a bad
// range is reported before any file is touched.
func NewRunner(loader *source.Loader, options linecmp.Config, deps Deps) (*Runner, error) {
	err := options.Validate()
	if err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := deps.Tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer("")
	}

	return &Runner{
		loader:     loader,
		comparator: linecmp.NewComparator(options),
		logger:     logger,
		tracer:     tracer,
		metrics:    deps.Metrics,
	}, nil
}

// Run compares the files at leftPath and rightPath. I/O and decode errors
// are fatal and returned as is; differing files are not an error.
func (r *Runner) Run(ctx context.Context, leftPath, rightPath string) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, spanCompare,
		trace.WithAttributes(
			attribute.String("difr.left", leftPath),
			attribute.String("difr.right", rightPath),
		),
	)
	defer span.End()

	start := time.Now()

	res, err := r.run(ctx, leftPath, rightPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(
		attribute.String("difr.strategy", string(res.Strategy)),
		attribute.Bool("difr.equal", res.Equal),
	)

	stats := observability.ComparisonStats{
		Strategy:  string(res.Strategy),
		Equal:     res.Equal,
		BytesRead: res.Left.Size + res.Right.Size,
		Duration:  time.Since(start),
	}

	if res.Report != nil {
		stats.Positions = len(res.Report.Events)
		stats.Mismatches = res.Report.Mismatches()
	}

	r.metrics.RecordComparison(ctx, stats)

	r.logger.DebugContext(ctx, "comparison finished",
		"strategy", res.Strategy,
		"equal", res.Equal,
		"duration", stats.Duration,
	)

	return res, nil
}

func (r *Runner) run(ctx context.Context, leftPath, rightPath string) (*Result, error) {
	leftText, err := r.loader.IsText(leftPath)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", leftPath, err)
	}

	rightText, err := r.loader.IsText(rightPath)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", rightPath, err)
	}

	left, err := r.loader.Load(leftPath)
	if err != nil {
		return nil, err
	}

	right, err := r.loader.Load(rightPath)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Left:     describe(left, leftText),
		Right:    describe(right, rightText),
		Strategy: StrategyDigest,
		Options:  r.comparator.Config(),
	}

	res.Equal = digest.Equal(res.Left.Digest, res.Right.Digest)

	if res.Binary() {
		r.logger.DebugContext(ctx, "binary input, comparing digests only",
			"left_text", leftText, "right_text", rightText)

		return res, nil
	}

	if res.Equal {
		return res, nil
	}

	leftLines, err := left.Lines()
	if err != nil {
		return nil, err
	}

	rightLines, err := right.Lines()
	if err != nil {
		return nil, err
	}

	report := r.comparator.Compare(leftLines, rightLines)

	res.Strategy = StrategyLines
	res.Report = &report
	res.Equal = report.Equal()

	return res, nil
}

func describe(file *source.File, text bool) FileInfo {
	info := FileInfo{
		Path:   file.Path,
		Size:   file.Size,
		Digest: digest.Sum(file.Content),
		Text:   text,
	}

	if text {
		info.Lines = file.LineCount()
		info.Language = file.Language()
	}

	return info
}
