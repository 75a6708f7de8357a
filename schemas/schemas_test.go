package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/jd-annotator/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"priors_record.schema.json",
	"annotation.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			_, hasProps := schemaObj["properties"]

			assert.True(t, hasType || hasSchema || hasProps,
				"schema should have at least type, $schema, or properties")
		})
	}
}

func TestPriorsRecordSchema_AcceptsEmptyRecord(t *testing.T) {
	record := `{
		"version": 1,
		"sentence_index": {"embeddings": [], "texts": [], "metadata": [], "count": 0},
		"skill_priors": {},
		"stats": {
			"total_suggestions_made": 0,
			"accepted_unchanged": 0,
			"edited": 0,
			"deleted": 0,
			"annotations_since_build": 0,
			"total_annotations_at_build": 0
		}
	}`

	err := schemas.ValidateBytes("priors_record.schema.json", []byte(record))
	assert.NoError(t, err)
}

func TestPriorsRecordSchema_RejectsOutOfRangeConfidence(t *testing.T) {
	record := `{
		"version": 1,
		"sentence_index": {"count": 0},
		"skill_priors": {
			"aws": {
				"relevance": {"value": "high", "confidence": 1.7, "n": 3},
				"requirement": {"confidence": 0.5, "n": 0},
				"passion": {"confidence": 0.5, "n": 0},
				"identity": {"confidence": 0.5, "n": 0},
				"avoid": false
			}
		},
		"stats": {}
	}`

	err := schemas.ValidateBytes("priors_record.schema.json", []byte(record))
	require.Error(t, err)
	assert.IsType(t, &schemas.ValidationError{}, err)
}

func TestAnnotationSchema_RejectsUnknownSource(t *testing.T) {
	annotation := `{
		"id": "550e8400-e29b-41d4-a716-446655440000",
		"source": "scraped",
		"target": {"text": "5+ years Python experience"}
	}`

	err := schemas.ValidateBytes("annotation.schema.json", []byte(annotation))
	require.Error(t, err)
	assert.IsType(t, &schemas.ValidationError{}, err)
}
