package generator

import "github.com/tordrt/jdlgen/internal/schema"

// NewEnum builds an enumeration, normalizing every literal to constant casing.
// Literals keep their order and duplicates are passed through.
func NewEnum(name, description string, literals []string) *schema.Enum {
	values := make([]string, len(literals))
	for i, v := range literals {
		values[i] = ConstantName(v)
	}
	return &schema.Enum{
		Name:        name,
		Description: description,
		Values:      values,
	}
}
