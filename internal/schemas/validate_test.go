package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"count": {"type": "integer"}
	}
}`

func writeTestSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := writeTestSchema(t)
	jsonPath := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name": "test", "count": 3}`), 0644))

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	schemaPath := writeTestSchema(t)
	jsonPath := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"count": 3}`), 0644))

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_WrongType(t *testing.T) {
	schemaPath := writeTestSchema(t)
	jsonPath := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name": "test", "count": "three"}`), 0644))

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name": "test"}`), 0644))

	err := ValidateJSON("testdata/nonexistent_schema.json", jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentJSON(t *testing.T) {
	schemaPath := writeTestSchema(t)

	err := ValidateJSON(schemaPath, "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateBytes_Valid(t *testing.T) {
	schemaPath := writeTestSchema(t)

	err := ValidateBytes(schemaPath, []byte(`{"name": "test"}`))
	assert.NoError(t, err)
}

func TestValidateBytes_Invalid(t *testing.T) {
	schemaPath := writeTestSchema(t)

	err := ValidateBytes(schemaPath, []byte(`{"count": 3}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_Valid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"name": "test"}`)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"count": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "count", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "count")
}

func TestValidateJSONString_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["prior"],
		"properties": {
			"prior": {
				"type": "object",
				"required": ["confidence"],
				"properties": {
					"confidence": {"type": "number"}
				}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"prior": {}}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Greater(t, len(validationErr.Errors), 0)
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
		}
	}
	assert.True(t, found, "field errors should carry field paths")
}

func TestResolveSchemaPath_RelativeToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	schemaFile := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schemaFile, []byte(testSchema), 0644))

	origWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origWD) })

	resolved := ResolveSchemaPath("schema.json")
	assert.NotEmpty(t, resolved)
}
