package schema

import "strings"

// RelationshipKind is the cardinality of a relationship declaration.
// The declaration order of the kinds is the order their blocks are emitted in.
type RelationshipKind int

const (
	OneToMany RelationshipKind = iota
	OneToOne
	ManyToMany
	ManyToOne
)

// RelationshipKinds lists every kind in emission order
var RelationshipKinds = []RelationshipKind{OneToMany, OneToOne, ManyToMany, ManyToOne}

var relationshipMarkers = map[string]RelationshipKind{
	"one-to-many":  OneToMany,
	"one-to-one":   OneToOne,
	"many-to-many": ManyToMany,
	"many-to-one":  ManyToOne,
}

// ParseRelationshipKind parses an x-entity-relationship marker value
func ParseRelationshipKind(s string) (RelationshipKind, bool) {
	kind, ok := relationshipMarkers[strings.ToLower(strings.TrimSpace(s))]
	return kind, ok
}

func (k RelationshipKind) String() string {
	switch k {
	case OneToMany:
		return "OneToMany"
	case OneToOne:
		return "OneToOne"
	case ManyToMany:
		return "ManyToMany"
	case ManyToOne:
		return "ManyToOne"
	}
	return "Unknown"
}

// Model is the derived domain model rendered into JDL
type Model struct {
	Entities []*Entity
	Enums    []*Enum
}

// Entity represents a persistable entity
type Entity struct {
	Name          string
	Description   string
	Package       string
	Fields        []Field
	Enums         []*Enum // enums declared inline by the entity's own fields
	Relationships []Relationship
}

// RelationshipsOf returns the entity's relationships of one kind in declaration order
func (e *Entity) RelationshipsOf(kind RelationshipKind) []Relationship {
	var rels []Relationship
	for _, r := range e.Relationships {
		if r.Kind == kind {
			rels = append(rels, r)
		}
	}
	return rels
}

// Field represents an entity field
type Field struct {
	Name        string
	Type        string
	Validations []string
	Required    bool
	Unique      bool
	Description string
	Annotations []string
}

// Declaration returns the type token followed by validation tokens,
// e.g. "String minlength(3) required unique"
func (f Field) Declaration() string {
	tokens := make([]string, 0, len(f.Validations)+3)
	tokens = append(tokens, f.Type)
	tokens = append(tokens, f.Validations...)
	if f.Required {
		tokens = append(tokens, "required")
	}
	if f.Unique {
		tokens = append(tokens, "unique")
	}
	return strings.TrimSpace(strings.Join(tokens, " "))
}

// Relationship represents one relationship declaration line
type Relationship struct {
	Kind     RelationshipKind
	Owner    string
	Field    string
	Required bool
	Target   string
	Inverse  string // field name on the target side, if any
}

// String renders the declaration, e.g. "Invoice{customer required} to Customer"
func (r Relationship) String() string {
	var b strings.Builder
	b.WriteString(r.Owner)
	b.WriteString("{")
	b.WriteString(r.Field)
	if r.Required {
		b.WriteString(" required")
	}
	b.WriteString("} to ")
	b.WriteString(r.Target)
	if r.Inverse != "" {
		b.WriteString("{")
		b.WriteString(r.Inverse)
		b.WriteString("}")
	}
	return b.String()
}

// Enum represents an enumeration with values already in constant casing
type Enum struct {
	Name        string
	Description string
	Values      []string
}
