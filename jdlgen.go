// Package jdlgen converts OpenAPI v3 documents into JDL domain models.
//
// Every object schema of the document's components becomes an entity, string
// schemas with a literal set become enumerations, and references between schemas
// become relationships. Request, response and filter DTOs are recognised by name
// and left out. Vendor extensions on schemas and properties steer the result:
//
//   - x-entity-ref: the property holds the id of another entity
//   - x-entity-relationship: one-to-one, one-to-many, many-to-one or many-to-many
//   - x-required: the relationship is required
//   - x-parent-field-name: names the inverse side of a one-to-many relationship
//   - x-unique: the field is unique
//   - x-package-name: the entity's package
//   - x-skip-persistence: the schema is not an entity
//
// # Quick Start
//
//	err := jdlgen.GenerateFile(
//		context.Background(),
//		"api.yaml",
//		"output/domain.jdl",
//		&jdlgen.Options{PackageName: "com.example.app", BaseName: "App"},
//	)
//
// # Header Overrides
//
// The output starts with an application config block and global options. Each is
// replaced verbatim by app_config.jdl or global_options.jdl in Options.PartialsDir
// when that file exists.
package jdlgen

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tordrt/jdlgen/internal/config"
	"github.com/tordrt/jdlgen/internal/formatter"
	"github.com/tordrt/jdlgen/internal/generator"
	"github.com/tordrt/jdlgen/internal/openapi"
	"github.com/tordrt/jdlgen/internal/schema"
)

// Options configures generation.
//
// PackageName and BaseName are required by GenerateFile. The rest are optional:
//   - EntityPackage: defaults to "gen" for entities without x-package-name
//   - PartialsDir: empty disables header overrides
type Options struct {
	// PackageName is the application's Java package, e.g. "com.example.app"
	PackageName string

	// BaseName is the application name
	BaseName string

	// EntityPackage is the @EntityPackage of entities without x-package-name
	EntityPackage string

	// PartialsDir is searched for header override files
	PartialsDir string
}

// GenerateFile reads the OpenAPI document at specPath and writes its JDL to
// outputPath, replacing any previous content.
//
// Returns an error wrapping:
//   - ErrUsage if specPath, PackageName or BaseName is empty; nothing is read or written
//   - ErrParse if the document cannot be loaded
//   - ErrOutput if the output cannot be written
func GenerateFile(ctx context.Context, specPath, outputPath string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	cfg := config.Config{APISpec: specPath, PackageName: opts.PackageName, BaseName: opts.BaseName}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	doc, err := LoadDocument(ctx, specPath)
	if err != nil {
		return err
	}

	data, err := Generate(doc, opts)
	if err != nil {
		return err
	}

	return WriteOutput(outputPath, data)
}

// LoadDocument parses and dereferences the OpenAPI document at path
func LoadDocument(ctx context.Context, path string) (*schema.Document, error) {
	doc, err := openapi.LoadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return doc, nil
}

// Generate renders the JDL for a loaded document in memory
func Generate(doc *schema.Document, opts *Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes the header, the entities and the enumerations of doc to w
func Render(w io.Writer, doc *schema.Document, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}

	header, err := formatter.LoadHeader(opts.PartialsDir, formatter.HeaderData{
		BaseName:    opts.BaseName,
		PackageName: opts.PackageName,
	})
	if err != nil {
		return err
	}

	model := generator.Generate(doc, generator.Options{DefaultPackage: opts.EntityPackage})

	f := formatter.NewJDLFormatter(w)
	if err := f.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.Format(model); err != nil {
		return fmt.Errorf("failed to format model: %w", err)
	}
	return nil
}

// WriteOutput writes data to path, creating parent directories as needed
func WriteOutput(path string, data []byte) error {
	if err := formatter.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	zap.S().Infow("wrote JDL", "path", path, "bytes", len(data))
	return nil
}
