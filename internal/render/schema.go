package render

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaValidation is returned when a JSON document does not match the report schema.
var ErrSchemaValidation = errors.New("report does not match schema")

//go:embed report.schema.json
var reportSchema []byte

// Schema returns the JSON schema of the json format.
func Schema() []byte {
	return reportSchema
}

// ValidateJSON checks doc against the report schema.
func ValidateJSON(doc []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(reportSchema)
	docLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaValidation, strings.Join(msgs, "; "))
}
