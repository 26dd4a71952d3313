package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// decodeUnresolved decodes a document without dereferencing it. Every $ref keeps
// its pointer string and a nil Value, which is all conversion needs.
func decodeUnresolved(data []byte) (*openapi3.T, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(jsonCompatible(raw))
	if err != nil {
		return nil, err
	}

	doc := &openapi3.T{}
	if err := doc.UnmarshalJSON(encoded); err != nil {
		return nil, err
	}
	return doc, nil
}

// jsonCompatible rewrites mappings with non-string keys, such as unquoted
// response codes, into string-keyed maps
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = jsonCompatible(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = jsonCompatible(item)
		}
		return val
	}
	return v
}
