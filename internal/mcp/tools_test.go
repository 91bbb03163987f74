package mcp

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/difr/internal/render"
	"github.com/Sumatoshi-tech/difr/internal/source"
)

func newTestLoader(t *testing.T, files map[string]string) *source.Loader {
	t.Helper()

	fsys := memfs.New()

	for name, content := range files {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o600))
	}

	return source.NewLoader(fsys, "/")
}

func textOf(t *testing.T, result *mcpsdk.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestValidateCompareInput(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, validateCompareInput(CompareInput{}), ErrEmptyPath)
	require.ErrorIs(t, validateCompareInput(CompareInput{LeftPath: "/a"}), ErrEmptyPath)
	require.ErrorIs(t, validateCompareInput(CompareInput{LeftPath: "a", RightPath: "/b"}), ErrPathNotAbsolute)
	require.ErrorIs(t, validateCompareInput(CompareInput{LeftPath: "/a", RightPath: "b"}), ErrPathNotAbsolute)
	require.NoError(t, validateCompareInput(CompareInput{LeftPath: "/a", RightPath: "/b"}))
}

func TestCompareOptions(t *testing.T) {
	t.Parallel()

	cfg := compareOptions(CompareInput{ExcludeEmptyLines: true})
	assert.True(t, cfg.ExcludeEmptyLines)
	assert.Nil(t, cfg.Range)

	cfg = compareOptions(CompareInput{To: 4})
	require.NotNil(t, cfg.Range)
	assert.Equal(t, 1, cfg.Range.From)
	assert.Equal(t, 4, cfg.Range.To)

	cfg = compareOptions(CompareInput{From: 3})
	require.NotNil(t, cfg.Range)
	assert.Equal(t, 3, cfg.Range.From)
	assert.Zero(t, cfg.Range.To)
}

func TestCompareHandler_Differences(t *testing.T) {
	t.Parallel()

	h := &compareHandler{loader: newTestLoader(t, map[string]string{"/a": "a\nb\n", "/b": "a\nc\n"})}

	result, output, err := h.handle(context.Background(), nil, CompareInput{LeftPath: "/a", RightPath: "/b"})
	require.NoError(t, err)
	require.False(t, result.IsError)

	doc, ok := output.Data.(render.Document)
	require.True(t, ok)
	assert.False(t, doc.Equal)
	assert.Equal(t, "lines", doc.Strategy)
	require.Len(t, doc.Events, 1)
	assert.Equal(t, "mismatch", doc.Events[0].Kind)

	require.NoError(t, render.ValidateJSON([]byte(textOf(t, result))))
}

func TestCompareHandler_InvalidRange(t *testing.T) {
	t.Parallel()

	h := &compareHandler{loader: newTestLoader(t, map[string]string{"/a": "a", "/b": "a"})}

	result, _, err := h.handle(context.Background(), nil, CompareInput{LeftPath: "/a", RightPath: "/b", From: 5, To: 2})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "invalid line range")
}

func TestCompareHandler_MissingFile(t *testing.T) {
	t.Parallel()

	h := &compareHandler{loader: newTestLoader(t, map[string]string{"/a": "a"})}

	result, _, err := h.handle(context.Background(), nil, CompareInput{LeftPath: "/a", RightPath: "/missing"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestCompareHandler_RelativePath(t *testing.T) {
	t.Parallel()

	h := &compareHandler{}

	result, _, err := h.handle(context.Background(), nil, CompareInput{LeftPath: "a", RightPath: "b"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), ErrPathNotAbsolute.Error())
}
