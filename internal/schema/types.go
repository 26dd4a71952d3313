package schema

// Primitive and structural type tags as they appear in an OpenAPI document.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// Document represents the component schemas of one OpenAPI document
type Document struct {
	// Names lists schema names in document order
	Names   []string
	Schemas map[string]*Definition
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{Schemas: make(map[string]*Definition)}
}

// Add appends a definition, keeping the first position of a repeated name
func (d *Document) Add(def *Definition) {
	if _, exists := d.Schemas[def.Name]; !exists {
		d.Names = append(d.Names, def.Name)
	}
	d.Schemas[def.Name] = def
}

// Lookup returns the definition registered under name
func (d *Document) Lookup(name string) (*Definition, bool) {
	def, ok := d.Schemas[name]
	return def, ok
}

// Definitions returns all definitions in document order
func (d *Document) Definitions() []*Definition {
	defs := make([]*Definition, 0, len(d.Names))
	for _, name := range d.Names {
		defs = append(defs, d.Schemas[name])
	}
	return defs
}

// Constraints holds the validation keywords shared by schemas and properties
type Constraints struct {
	Minimum   *float64
	Maximum   *float64
	MinLength *uint64
	MaxLength *uint64
	Pattern   string
	Format    string
}

// Definition represents a top-level component schema
type Definition struct {
	Name        string
	Type        string
	Description string
	Required    []string
	Constraints
	Enum       []string
	Properties []*Property
	AllOf      []*Member
	AnyOf      []*Member
	OneOf      []*Member
	Markers    Markers
}

// IsRequired reports whether the definition lists the named property as required
func (d *Definition) IsRequired(name string) bool {
	for _, r := range d.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Compositions returns the allOf, anyOf and oneOf member lists in that order
func (d *Definition) Compositions() [][]*Member {
	return [][]*Member{d.AllOf, d.AnyOf, d.OneOf}
}

// Member is one element of a composition keyword: a reference or an inline schema
type Member struct {
	Ref        string
	Properties []*Property
	Markers    Markers
}

// Property represents a property of a schema or of an inline composition member
type Property struct {
	Name string
	// Type is empty when the property is declared only through $ref or composition
	Type        string
	Description string
	Constraints
	Enum     []string
	Ref      string
	ItemsRef string
	Composed []*Member
	Markers  Markers
}

// Markers holds the generator vendor extensions found on a schema, property or member
type Markers struct {
	EntityRef            string // x-entity-ref
	Relationship         string // x-entity-relationship
	ParentField          string // x-parent-field-name
	RequiredRelationship bool   // x-required
	Unique               bool   // x-unique
	Package              string // x-package-name
	SkipPersistence      bool   // x-skip-persistence
}

// Merge fills the zero-valued markers of m from other
func (m Markers) Merge(other Markers) Markers {
	if m.EntityRef == "" {
		m.EntityRef = other.EntityRef
	}
	if m.Relationship == "" {
		m.Relationship = other.Relationship
	}
	if m.ParentField == "" {
		m.ParentField = other.ParentField
	}
	if m.Package == "" {
		m.Package = other.Package
	}
	m.RequiredRelationship = m.RequiredRelationship || other.RequiredRelationship
	m.Unique = m.Unique || other.Unique
	m.SkipPersistence = m.SkipPersistence || other.SkipPersistence
	return m
}
