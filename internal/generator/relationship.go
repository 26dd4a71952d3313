package generator

import (
	"go.uber.org/zap"

	"github.com/tordrt/jdlgen/internal/schema"
)

// relationshipKind returns the kind named by an x-entity-relationship marker, or def
// when the marker is absent. An unknown marker value yields no relationship at all.
func relationshipKind(marker string, def schema.RelationshipKind, owner, prop string) (schema.RelationshipKind, bool) {
	if marker == "" {
		return def, true
	}
	kind, ok := schema.ParseRelationshipKind(marker)
	if !ok {
		zap.S().Warnw("unknown relationship marker, skipping property",
			"entity", owner, "property", prop, "marker", marker)
		return 0, false
	}
	return kind, true
}

// newRelationship builds the declaration for one reference-typed property.
// owner and target are type names; field is the raw property-derived name.
func newRelationship(kind schema.RelationshipKind, owner, field, target string, m schema.Markers) schema.Relationship {
	rel := schema.Relationship{
		Kind:   kind,
		Owner:  owner,
		Field:  MemberName(field),
		Target: target,
	}

	switch kind {
	case schema.OneToMany:
		if m.ParentField != "" {
			rel.Inverse = MemberName(m.ParentField)
		}
	case schema.OneToOne, schema.ManyToOne:
		rel.Required = m.RequiredRelationship
	case schema.ManyToMany:
		rel.Inverse = MemberName(owner)
	}
	return rel
}
