package generator

import (
	"strings"

	"github.com/tordrt/jdlgen/internal/schema"
)

// RefKind classifies the target of a reference
type RefKind int

const (
	RefUnresolved RefKind = iota
	RefEnum
	RefAlias
	RefEntity
)

func (k RefKind) String() string {
	switch k {
	case RefEnum:
		return "enum"
	case RefAlias:
		return "alias"
	case RefEntity:
		return "entity"
	}
	return "unresolved"
}

// Resolution is the outcome of resolving a reference
type Resolution struct {
	Kind RefKind
	// Name is the normalized type name of the target, or the bare
	// trailing segment when the target is not in the document
	Name string
	// Definition is set for aliases, whose constraints type the field
	Definition *schema.Definition
}

// Resolver resolves references against a document and its classification.
// It only reads the maps built during classification.
type Resolver struct {
	doc     *schema.Document
	enums   map[string]*schema.Definition
	aliases map[string]*schema.Definition
}

// NewResolver creates a resolver over enum and alias maps keyed by normalized schema name
func NewResolver(doc *schema.Document, enums, aliases map[string]*schema.Definition) *Resolver {
	return &Resolver{doc: doc, enums: enums, aliases: aliases}
}

// Resolve resolves a "$ref"-style pointer such as "#/components/schemas/Customer"
func (r *Resolver) Resolve(ref string) Resolution {
	segment := RefName(ref)
	if _, ok := r.doc.Lookup(segment); !ok {
		return Resolution{Kind: RefUnresolved, Name: segment}
	}

	name := TypeName(segment)
	if _, ok := r.enums[name]; ok {
		return Resolution{Kind: RefEnum, Name: name}
	}
	if alias, ok := r.aliases[name]; ok {
		return Resolution{Kind: RefAlias, Name: name, Definition: alias}
	}
	return Resolution{Kind: RefEntity, Name: name}
}

// ResolveMarker resolves an x-entity-ref marker found on the named property and
// returns the relationship field name: a foreign-key style "x_id" names field "x".
func (r *Resolver) ResolveMarker(ref, propName string) (Resolution, string) {
	return r.Resolve(ref), strings.TrimSuffix(propName, "_id")
}
