package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var compiled sync.Map // schema name -> *jsonschema.Schema

// conform extracts the JSON document from raw model output and validates
// it against schema. Models served through OpenAI-compatible endpoints
// often wrap JSON in a markdown fence or lead with a sentence; both are
// tolerated.
func conform(provider string, schema *Schema, raw string) (json.RawMessage, error) {
	doc := extractJSON(raw)
	if doc == "" {
		return nil, invalidResponse(provider, json.RawMessage(raw), "no JSON object in output")
	}

	var value any
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, invalidResponse(provider, json.RawMessage(raw), "invalid JSON: %w", err)
	}

	sch, err := compile(schema)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", schema.Name, err)
	}
	if err := sch.Validate(value); err != nil {
		return nil, invalidResponse(provider, json.RawMessage(doc), "does not match %s: %w", schema.Name, err)
	}
	return json.RawMessage(doc), nil
}

// extractJSON returns the outermost JSON object in s, or "".
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(schema.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go maps with typed slices.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}

	url := "mem://schemas/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	v, _ := compiled.LoadOrStore(schema.Name, sch)
	return v.(*jsonschema.Schema), nil
}
