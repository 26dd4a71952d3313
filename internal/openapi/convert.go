package openapi

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/tordrt/jdlgen/internal/schema"
)

// Vendor extensions understood by the generator
const (
	extEntityRef       = "x-entity-ref"
	extRelationship    = "x-entity-relationship"
	extParentField     = "x-parent-field-name"
	extRequired        = "x-required"
	extUnique          = "x-unique"
	extPackageName     = "x-package-name"
	extSkipPersistence = "x-skip-persistence"
)

func convertDocument(doc *openapi3.T, order keyOrder) *schema.Document {
	result := schema.NewDocument()
	if doc.Components == nil {
		return result
	}

	for _, name := range keys(order, schemasPath, doc.Components.Schemas) {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		def := convertDefinition(name, ref.Value, joinPath(schemasPath, name), order)
		if ref.Ref != "" {
			def.Markers = def.Markers.Merge(readMarkers(ref.Extensions))
		}
		result.Add(def)
	}
	return result
}

func convertDefinition(name string, s *openapi3.Schema, path string, order keyOrder) *schema.Definition {
	return &schema.Definition{
		Name:        name,
		Type:        typeOf(s),
		Description: s.Description,
		Required:    s.Required,
		Constraints: constraintsOf(s),
		Enum:        enumOf(s),
		Properties:  convertProperties(s, path, order),
		AllOf:       convertMembers(s.AllOf, path+"/allOf", order),
		AnyOf:       convertMembers(s.AnyOf, path+"/anyOf", order),
		OneOf:       convertMembers(s.OneOf, path+"/oneOf", order),
		Markers:     readMarkers(s.Extensions),
	}
}

func convertProperties(s *openapi3.Schema, path string, order keyOrder) []*schema.Property {
	if len(s.Properties) == 0 {
		return nil
	}
	propsPath := path + "/properties"
	props := make([]*schema.Property, 0, len(s.Properties))
	for _, name := range keys(order, propsPath, s.Properties) {
		props = append(props, convertProperty(name, s.Properties[name], joinPath(propsPath, name), order))
	}
	return props
}

func convertProperty(name string, ref *openapi3.SchemaRef, path string, order keyOrder) *schema.Property {
	p := &schema.Property{Name: name}
	if ref == nil {
		return p
	}

	// A referencing property is reference-only: the resolved target's type and
	// constraints belong to the target, not to the property.
	if ref.Ref != "" {
		p.Ref = ref.Ref
		p.Markers = readMarkers(ref.Extensions)
		return p
	}

	s := ref.Value
	if s == nil {
		return p
	}
	p.Type = typeOf(s)
	p.Description = s.Description
	p.Constraints = constraintsOf(s)
	p.Enum = enumOf(s)
	p.Markers = readMarkers(s.Extensions)
	if s.Items != nil {
		p.ItemsRef = s.Items.Ref
	}

	switch {
	case len(s.AllOf) > 0:
		p.Composed = convertMembers(s.AllOf, path+"/allOf", order)
	case len(s.AnyOf) > 0:
		p.Composed = convertMembers(s.AnyOf, path+"/anyOf", order)
	case len(s.OneOf) > 0:
		p.Composed = convertMembers(s.OneOf, path+"/oneOf", order)
	}
	return p
}

func convertMembers(refs openapi3.SchemaRefs, path string, order keyOrder) []*schema.Member {
	if len(refs) == 0 {
		return nil
	}
	members := make([]*schema.Member, 0, len(refs))
	for i, ref := range refs {
		if ref == nil {
			continue
		}
		m := &schema.Member{}
		switch {
		case ref.Ref != "":
			m.Ref = ref.Ref
			m.Markers = readMarkers(ref.Extensions)
		case ref.Value != nil:
			m.Properties = convertProperties(ref.Value, joinPath(path, strconv.Itoa(i)), order)
			m.Markers = readMarkers(ref.Value.Extensions)
		}
		members = append(members, m)
	}
	return members
}

func typeOf(s *openapi3.Schema) string {
	if s.Type == nil || len(*s.Type) == 0 {
		return ""
	}
	return (*s.Type)[0]
}

func constraintsOf(s *openapi3.Schema) schema.Constraints {
	c := schema.Constraints{
		Minimum:   s.Min,
		Maximum:   s.Max,
		MaxLength: s.MaxLength,
		Pattern:   s.Pattern,
		Format:    s.Format,
	}
	// MinLength is not a pointer: zero and absent look the same
	if s.MinLength > 0 {
		minLength := s.MinLength
		c.MinLength = &minLength
	}
	return c
}

func enumOf(s *openapi3.Schema) []string {
	if len(s.Enum) == 0 {
		return nil
	}
	values := make([]string, 0, len(s.Enum))
	for _, v := range s.Enum {
		if v == nil {
			continue
		}
		values = append(values, fmt.Sprint(v))
	}
	return values
}

// readMarkers reads the generator extensions once so later stages work with typed fields
func readMarkers(ext map[string]any) schema.Markers {
	if len(ext) == 0 {
		return schema.Markers{}
	}
	m := schema.Markers{
		EntityRef:            stringValue(ext[extEntityRef]),
		Relationship:         stringValue(ext[extRelationship]),
		ParentField:          stringValue(ext[extParentField]),
		RequiredRelationship: truthy(ext[extRequired]),
		Unique:               truthy(ext[extUnique]),
		Package:              stringValue(ext[extPackageName]),
	}
	if v, ok := ext[extSkipPersistence]; ok {
		// The key alone marks the schema; only an explicit false opts back in.
		m.SkipPersistence = v == nil || truthy(v) || stringValue(v) == ""
	}
	return m
}

func decode(v any) any {
	switch raw := v.(type) {
	case json.RawMessage:
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return string(raw)
		}
		return out
	case []byte:
		return decode(json.RawMessage(raw))
	}
	return v
}

func stringValue(v any) string {
	switch val := decode(v).(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func truthy(v any) bool {
	switch val := decode(v).(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
		return val != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return true
	}
}
