// Package schema builds JSON schemas from declared field sets and decodes
// model responses that are supposed to conform to them.
package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Schema is a JSON schema fragment in map form, ready to hand to an
// inference backend as a structured-output response format.
type Schema map[string]any

// Object declares an object schema with the given properties. Every
// property is required and no extra keys are allowed, which keeps strict
// structured-output modes honest.
func Object(properties map[string]Schema) Schema {
	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	// Stable order for tests and request bodies.
	sort.Strings(required)
	return Schema{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

// String declares a string property.
func String(description string) Schema {
	s := Schema{"type": "string"}
	if description != "" {
		s["description"] = description
	}
	return s
}

// Integer declares an integer property.
func Integer(description string) Schema {
	s := Schema{"type": "integer"}
	if description != "" {
		s["description"] = description
	}
	return s
}

// Array declares an array property with the given item schema.
func Array(items Schema, description string) Schema {
	s := Schema{"type": "array", "items": items}
	if description != "" {
		s["description"] = description
	}
	return s
}

var (
	fencedJSON  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	braceJSON   = regexp.MustCompile(`(?s)(\{.*\})`)
	bracketJSON = regexp.MustCompile(`(?s)(\[.*\])`)
)

// ExtractJSON pulls a JSON document out of text that may carry explanatory
// prose around it. It tries markdown code fences first, then the outermost
// object span, then the outermost array span.
func ExtractJSON(text string) ([]byte, bool) {
	for _, re := range []*regexp.Regexp{fencedJSON, braceJSON, bracketJSON} {
		if m := re.FindStringSubmatch(text); m != nil {
			candidate := strings.TrimSpace(m[1])
			if json.Valid([]byte(candidate)) {
				return []byte(candidate), true
			}
		}
	}
	return nil, false
}

// Decode unmarshals a model response into out. It tries the content
// directly first and falls back to ExtractJSON when the model wrapped the
// document in prose or fences.
func Decode(content string, out any) error {
	if err := json.Unmarshal([]byte(content), out); err == nil {
		return nil
	}
	raw, ok := ExtractJSON(content)
	if !ok {
		return fmt.Errorf("no valid JSON found in response")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("response JSON does not match expected shape: %w", err)
	}
	return nil
}
