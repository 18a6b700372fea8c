// Package validation type-checks the inbound request document before the
// orchestrator core is invoked. Every field is optional; the schema only
// rejects documents whose fields carry the wrong shape.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidRequest = errors.New("invalid request document")

const requestSchema = `{
  "type": "object",
  "properties": {
    "state": {"type": "string"},
    "transcript": {"type": "string"},
    "locale": {"type": "string"},
    "policies": {"type": "object"},
    "apps": {"type": "array", "items": {"type": "object"}},
    "windows": {"type": "array", "items": {"type": "object"}},
    "folders": {"type": "array", "items": {"type": "object"}},
    "macros": {"type": "array", "items": {"type": "object"}},
    "aliases": {"type": "array", "items": {"type": "object"}},
    "result_set": {"type": "array", "items": {"type": "object"}},
    "llm_summary": {"type": "string"},
    "default_search_engine": {"type": "string"}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(requestSchema)

// ValidateRequest checks a raw request document against the schema.
// Returns ErrInvalidRequest (wrapped with the failing paths) when the
// document is structurally wrong.
func ValidateRequest(document []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		details[i] = desc.String()
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(details, "; "))
}
