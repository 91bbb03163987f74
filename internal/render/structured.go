package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/difr/internal/session"
)

// yamlIndent is the indentation used by the yaml format.
const yamlIndent = 2

// JSON renders the Document as indented JSON.
type JSON struct {
	opts Options
}

// Render implements Renderer.
func (r *JSON) Render(w io.Writer, res *session.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(NewDocument(res, r.opts.ShowMatches))
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// YAML renders the Document as YAML.
type YAML struct {
	opts Options
}

// Render implements Renderer.
func (r *YAML) Render(w io.Writer, res *session.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)

	err := enc.Encode(NewDocument(res, r.opts.ShowMatches))
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("failed to flush YAML: %w", err)
	}

	return nil
}
