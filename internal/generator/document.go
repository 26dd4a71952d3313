// Package generator derives the JDL domain model from an OpenAPI schema document.
//
// Generation runs in two passes. The first classifies every top-level schema as an
// enumeration, a simple-type alias, an entity or skippable; the second derives one
// entity per entity schema, resolving references against the first pass. Global
// enumerations follow the entities in document order.
package generator

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/tordrt/jdlgen/internal/schema"
)

// DefaultPackage is the entity package used when a schema carries no x-package-name
const DefaultPackage = "gen"

// SchemaClass is the classification of a top-level schema
type SchemaClass int

const (
	ClassSkippable SchemaClass = iota
	ClassEnum
	ClassAlias
	ClassEntity
)

func (c SchemaClass) String() string {
	switch c {
	case ClassEnum:
		return "enum"
	case ClassAlias:
		return "alias"
	case ClassEntity:
		return "entity"
	}
	return "skippable"
}

var (
	skippableSchemaSuffix = regexp.MustCompile(`(CreateRequest|UpdateRequest|PatchRequest|Response|Filter|Sort|SortBy|Query)$`)
	skippableSchemaNames  = map[string]bool{"Links": true, "Meta": true}
)

// IsSkippableSchemaName reports whether a normalized schema name denotes a
// request, response, filter or paging DTO rather than a persistable entity
func IsSkippableSchemaName(name string) bool {
	return skippableSchemaNames[name] || skippableSchemaSuffix.MatchString(name)
}

// Classify assigns a schema to exactly one class
func Classify(def *schema.Definition) SchemaClass {
	switch def.Type {
	case schema.TypeString:
		if len(def.Enum) > 0 {
			return ClassEnum
		}
		return ClassAlias
	case schema.TypeNumber, schema.TypeBoolean:
		return ClassAlias
	case schema.TypeObject:
		if def.Markers.SkipPersistence || IsSkippableSchemaName(TypeName(def.Name)) {
			return ClassSkippable
		}
		return ClassEntity
	}
	return ClassSkippable
}

// Options configures generation
type Options struct {
	// DefaultPackage is used for entities without x-package-name
	DefaultPackage string
}

// Generator derives the model for one document
type Generator struct {
	doc       *schema.Document
	opts      Options
	classes   map[string]SchemaClass
	enums     map[string]*schema.Definition
	enumNames []string
	resolver  *Resolver
}

// New classifies every schema of doc. Classification is fixed for the
// lifetime of the generator.
func New(doc *schema.Document, opts Options) *Generator {
	if opts.DefaultPackage == "" {
		opts.DefaultPackage = DefaultPackage
	}

	g := &Generator{
		doc:     doc,
		opts:    opts,
		classes: make(map[string]SchemaClass, len(doc.Names)),
		enums:   make(map[string]*schema.Definition),
	}
	aliases := make(map[string]*schema.Definition)

	for _, def := range doc.Definitions() {
		class := Classify(def)
		g.classes[def.Name] = class

		name := TypeName(def.Name)
		switch class {
		case ClassEnum:
			if _, exists := g.enums[name]; !exists {
				g.enumNames = append(g.enumNames, name)
			}
			g.enums[name] = def
		case ClassAlias:
			aliases[name] = def
		}
	}

	g.resolver = NewResolver(doc, g.enums, aliases)
	return g
}

// Class returns the classification of the named schema
func (g *Generator) Class(name string) SchemaClass {
	return g.classes[name]
}

// Generate derives entities in document order followed by the global enumerations
func (g *Generator) Generate() *schema.Model {
	model := &schema.Model{}

	for _, def := range g.doc.Definitions() {
		class := g.classes[def.Name]
		if class != ClassEntity {
			zap.S().Debugw("not generating entity", "schema", def.Name, "class", class.String())
			continue
		}
		model.Entities = append(model.Entities, g.GenerateEntity(def))
	}

	for _, name := range g.enumNames {
		def := g.enums[name]
		model.Enums = append(model.Enums, NewEnum(name, def.Description, def.Enum))
	}

	zap.S().Debugw("generated model", "entities", len(model.Entities), "enums", len(model.Enums))
	return model
}

// Generate is a convenience wrapper around New(doc, opts).Generate()
func Generate(doc *schema.Document, opts Options) *schema.Model {
	return New(doc, opts).Generate()
}
