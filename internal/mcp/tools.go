package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/difr/internal/observability"
	"github.com/Sumatoshi-tech/difr/internal/render"
	"github.com/Sumatoshi-tech/difr/internal/session"
	"github.com/Sumatoshi-tech/difr/internal/source"
	"github.com/Sumatoshi-tech/difr/pkg/linecmp"
)

// ToolNameCompare is the name of the comparison tool.
const ToolNameCompare = "difr_compare"

// Sentinel errors for tool input validation.
var (
	// ErrEmptyPath indicates a path parameter is empty.
	ErrEmptyPath = errors.New("left_path and right_path are required and must not be empty")
	// ErrPathNotAbsolute indicates a path parameter is not an absolute path.
	ErrPathNotAbsolute = errors.New("paths must be absolute")
)

// CompareInput is the input schema for the difr_compare tool.
type CompareInput struct {
	LeftPath          string `json:"left_path"                     jsonschema:"absolute path of the first file"`
	RightPath         string `json:"right_path"                    jsonschema:"absolute path of the second file"`
	ExcludeEmptyLines bool   `json:"exclude_empty_lines,omitempty" jsonschema:"ignore empty and whitespace-only lines"`
	From              int    `json:"from,omitempty"                jsonschema:"first source line to compare (1-based)"`
	To                int    `json:"to,omitempty"                  jsonschema:"source line where comparison stops (exclusive)"`
	ShowMatches       bool   `json:"show_matches,omitempty"        jsonschema:"include matching positions in the events"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

type compareHandler struct {
	loader  *source.Loader
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.ComparisonMetrics
}

func (h *compareHandler) handle(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input CompareInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCompareInput(input)
	if err != nil {
		return errorResult(err)
	}

	loader := h.loader
	if loader == nil {
		loader, err = source.NewOSLoader()
		if err != nil {
			return errorResult(err)
		}
	}

	runner, err := session.NewRunner(loader, compareOptions(input), session.Deps{
		Logger:  h.logger,
		Tracer:  h.tracer,
		Metrics: h.metrics,
	})
	if err != nil {
		return errorResult(err)
	}

	res, err := runner.Run(ctx, input.LeftPath, input.RightPath)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(render.NewDocument(res, input.ShowMatches))
}

func compareOptions(input CompareInput) linecmp.Config {
	cfg := linecmp.Config{ExcludeEmptyLines: input.ExcludeEmptyLines}

	if input.From != 0 || input.To != 0 {
		cfg.Range = &linecmp.Range{From: max(input.From, 1), To: input.To}
	}

	return cfg
}

func validateCompareInput(input CompareInput) error {
	if input.LeftPath == "" || input.RightPath == "" {
		return ErrEmptyPath
	}

	for _, path := range []string{input.LeftPath, input.RightPath} {
		if !filepath.IsAbs(path) {
			return fmt.Errorf("%w: %s", ErrPathNotAbsolute, path)
		}
	}

	return nil
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
