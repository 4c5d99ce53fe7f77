package questions

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Flat-canonical documents are the format the conversion utility writes,
// so shape drift there indicates a curation bug worth surfacing. Schema
// violations are reported as warnings, never as ingestion failures: the
// permissive propagation policy keeps every recoverable question.
const flatDocumentSchema = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"test_metadata": {"type": "object"},
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": ["string", "integer"]},
					"difficulty": {"type": "string"},
					"content": {
						"type": "object",
						"required": ["question"],
						"properties": {
							"passage": {"type": "string"},
							"question": {"type": "string"},
							"options": {
								"type": "array",
								"items": {"type": "string"},
								"maxItems": 4
							}
						}
					},
					"solution": {
						"type": "object",
						"required": ["answer"],
						"properties": {
							"answer": {"type": "string"},
							"explanation": {"type": "string"}
						}
					}
				}
			}
		}
	}
}`

var flatSchema = gojsonschema.NewStringLoader(flatDocumentSchema)

// ValidateFlatDocument checks a flat-canonical document against the
// expected schema and returns human-readable violations. Recovered
// documents (no root) are exempt: the cascade already degraded them.
func ValidateFlatDocument(doc *Document) []string {
	if doc == nil || doc.Root == nil {
		return nil
	}

	payload := map[string]any{"questions": doc.Questions}
	if doc.Metadata != nil {
		payload["test_metadata"] = doc.Metadata
	}

	result, err := gojsonschema.Validate(flatSchema, gojsonschema.NewGoLoader(payload))
	if err != nil {
		return []string{fmt.Sprintf("schema validation unavailable: %v", err)}
	}

	var violations []string
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return violations
}
