package ocr

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// wordPageSchema describes one *_raw.json artifact: an array of word records
// as written by the OCR collaborator.
const wordPageSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["text", "left", "top", "width", "height", "conf"],
    "properties": {
      "text":   {"type": "string"},
      "left":   {"type": "integer"},
      "top":    {"type": "integer"},
      "width":  {"type": "integer"},
      "height": {"type": "integer"},
      "conf":   {"type": "number"}
    }
  }
}`

var pageSchema = mustCompilePageSchema()

func mustCompilePageSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("word_page.json", strings.NewReader(wordPageSchema)); err != nil {
		panic(fmt.Sprintf("add word page schema: %v", err))
	}
	schema, err := compiler.Compile("word_page.json")
	if err != nil {
		panic(fmt.Sprintf("compile word page schema: %v", err))
	}
	return schema
}

// validatePage checks a raw page artifact against the word-record schema
// before it is decoded into entities.
func validatePage(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal page: %w", err)
	}
	if err := pageSchema.Validate(v); err != nil {
		return fmt.Errorf("page does not match word-record schema: %w", err)
	}
	return nil
}
