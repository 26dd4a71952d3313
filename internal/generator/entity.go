package generator

import (
	"strings"

	"go.uber.org/zap"

	"github.com/tordrt/jdlgen/internal/schema"
)

// reservedProperties never become fields or relationships
var reservedProperties = map[string]bool{
	"id":            true,
	"uuid":          true,
	"downstream_id": true,
	"tags":          true,
}

func isSkippableProperty(name string) bool {
	return strings.Contains(name, "-") || reservedProperties[name]
}

// identifierField is the synthetic primary key every entity receives
func identifierField() schema.Field {
	return schema.Field{
		Name:        "uuid",
		Type:        TypeString,
		Annotations: []string{"@Id"},
	}
}

type propertyClass int

const (
	propertySkipped propertyClass = iota
	propertyEntityRef
	propertyScalar
	propertyArrayRef
	propertyRef
	propertyComposed
)

// classifyProperty decides how a property is generated. The cases are checked
// in precedence order; the first match wins.
func classifyProperty(p *schema.Property) propertyClass {
	switch {
	case isSkippableProperty(p.Name):
		return propertySkipped
	case p.Markers.EntityRef != "":
		return propertyEntityRef
	case p.Type != "" && p.Type != schema.TypeArray && p.Type != schema.TypeObject:
		return propertyScalar
	case p.Type == schema.TypeArray && p.ItemsRef != "":
		return propertyArrayRef
	case p.Type != "":
		// inline objects and arrays of inline items
		return propertySkipped
	case p.Ref != "":
		return propertyRef
	case len(p.Composed) > 1:
		return propertyComposed
	}
	return propertySkipped
}

// GenerateEntity derives the entity for one object schema
func (g *Generator) GenerateEntity(def *schema.Definition) *schema.Entity {
	pkg := def.Markers.Package
	if pkg == "" {
		pkg = g.opts.DefaultPackage
	}

	b := &entityBuilder{
		resolver: g.resolver,
		def:      def,
		entity: &schema.Entity{
			Name:        TypeName(def.Name),
			Description: def.Description,
			Package:     pkg,
			Fields:      []schema.Field{identifierField()},
		},
	}
	for _, p := range g.collectProperties(def) {
		b.add(p)
	}
	return b.entity
}

// collectProperties merges own properties with those inherited through allOf,
// anyOf and oneOf, in that order. The first declaration of a name wins, so own
// properties take precedence over inherited ones.
func (g *Generator) collectProperties(def *schema.Definition) []*schema.Property {
	var props []*schema.Property
	seen := make(map[string]bool)
	add := func(list []*schema.Property) {
		for _, p := range list {
			if !seen[p.Name] {
				seen[p.Name] = true
				props = append(props, p)
			}
		}
	}

	add(def.Properties)

	visited := map[string]bool{def.Name: true}
	var inherit func(d *schema.Definition)
	inherit = func(d *schema.Definition) {
		for _, members := range d.Compositions() {
			for _, m := range members {
				if m.Ref == "" {
					add(m.Properties)
					continue
				}
				name := RefName(m.Ref)
				if visited[name] {
					continue
				}
				visited[name] = true
				parent, ok := g.doc.Lookup(name)
				if !ok {
					zap.S().Warnw("composition references unknown schema", "schema", def.Name, "ref", m.Ref)
					continue
				}
				add(parent.Properties)
				inherit(parent)
			}
		}
	}
	inherit(def)

	return props
}

type entityBuilder struct {
	resolver *Resolver
	def      *schema.Definition
	entity   *schema.Entity
}

func (b *entityBuilder) add(p *schema.Property) {
	switch classifyProperty(p) {
	case propertyEntityRef:
		b.addEntityRef(p)
	case propertyScalar:
		b.addScalar(p)
	case propertyArrayRef:
		b.addArrayRef(p)
	case propertyRef:
		b.addRef(p, p.Ref, p.Markers)
	case propertyComposed:
		b.addComposed(p)
	default:
		zap.S().Debugw("skipping property", "entity", b.entity.Name, "property", p.Name)
	}
}

func (b *entityBuilder) addField(name, description string, f schema.Field) {
	f.Name = MemberName(name)
	f.Description = description
	b.entity.Fields = append(b.entity.Fields, f)
}

func (b *entityBuilder) addRelationship(kind schema.RelationshipKind, field, target string, m schema.Markers) {
	b.entity.Relationships = append(b.entity.Relationships,
		newRelationship(kind, b.entity.Name, field, target, m))
}

func (b *entityBuilder) addScalar(p *schema.Property) {
	f := MapType(p.Type, p.Constraints, b.def.IsRequired(p.Name), p.Markers.Unique)
	if p.Type == schema.TypeString && len(p.Enum) > 0 {
		enumName := b.entity.Name + TypeName(p.Name)
		f = schema.Field{Type: enumName}
		b.entity.Enums = append(b.entity.Enums, NewEnum(enumName, p.Description, p.Enum))
	}
	b.addField(p.Name, p.Description, f)
}

func (b *entityBuilder) addEntityRef(p *schema.Property) {
	res, field := b.resolver.ResolveMarker(p.Markers.EntityRef, p.Name)
	switch res.Kind {
	case RefEnum, RefAlias:
		b.addReferencedField(p, res, p.Markers)
	default:
		// The marker itself declares an entity, so a target missing from the
		// document still yields a relationship.
		if kind, ok := relationshipKind(p.Markers.Relationship, schema.ManyToOne, b.entity.Name, p.Name); ok {
			b.addRelationship(kind, field, TypeName(res.Name), p.Markers)
		}
	}
}

func (b *entityBuilder) addArrayRef(p *schema.Property) {
	res := b.resolver.Resolve(p.ItemsRef)
	if res.Kind == RefEnum || res.Kind == RefAlias {
		zap.S().Debugw("skipping array of scalar references", "entity", b.entity.Name, "property", p.Name, "ref", p.ItemsRef)
		return
	}

	kind, ok := relationshipKind(p.Markers.Relationship, schema.OneToMany, b.entity.Name, p.Name)
	if !ok {
		return
	}
	if kind != schema.OneToMany && kind != schema.ManyToMany {
		zap.S().Warnw("to-one relationship marker on array property, skipping",
			"entity", b.entity.Name, "property", p.Name, "marker", p.Markers.Relationship)
		return
	}
	b.addRelationship(kind, p.Name, TypeName(res.Name), p.Markers)
}

func (b *entityBuilder) addRef(p *schema.Property, ref string, m schema.Markers) {
	res := b.resolver.Resolve(ref)
	switch res.Kind {
	case RefEnum, RefAlias:
		b.addReferencedField(p, res, m)
	case RefEntity:
		if kind, ok := relationshipKind(m.Relationship, schema.ManyToOne, b.entity.Name, p.Name); ok {
			b.addRelationship(kind, p.Name, res.Name, m)
		}
	default:
		zap.S().Warnw("unresolved reference, emitting plain field", "entity", b.entity.Name, "property", p.Name, "ref", ref)
		b.addField(p.Name, p.Description, schema.Field{Type: res.Name})
	}
}

// addReferencedField adds a field typed by a referenced enum or simple-type alias
func (b *entityBuilder) addReferencedField(p *schema.Property, res Resolution, m schema.Markers) {
	// Enum fields are typed by the enum name alone
	if res.Kind == RefEnum {
		b.addField(p.Name, p.Description, schema.Field{Type: res.Name})
		return
	}

	alias := res.Definition
	f := MapType(alias.Type, alias.Constraints, b.def.IsRequired(p.Name), m.Unique || alias.Markers.Unique)
	description := alias.Description
	if description == "" {
		description = p.Description
	}
	b.addField(p.Name, description, f)
}

func (b *entityBuilder) addComposed(p *schema.Property) {
	var ref string
	markers := p.Markers
	for _, m := range p.Composed {
		if ref == "" && m.Ref != "" {
			ref = m.Ref
		}
		markers = markers.Merge(m.Markers)
	}
	if ref == "" {
		zap.S().Debugw("skipping composed property without reference", "entity", b.entity.Name, "property", p.Name)
		return
	}
	b.addRef(p, ref, markers)
}
