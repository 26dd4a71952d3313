// Package openapi loads OpenAPI v3 documents into the generator's schema model.
package openapi

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/tordrt/jdlgen/internal/schema"
)

// Loader parses and dereferences OpenAPI documents
type Loader struct {
	allowExternalRefs bool
}

// NewLoader creates a new document loader
func NewLoader() *Loader {
	return &Loader{allowExternalRefs: true}
}

// LoadFile reads and converts the document at path
func (l *Loader) LoadFile(ctx context.Context, path string) (*schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.load(ctx, data, &url.URL{Path: path})
}

// LoadData converts a document held in memory. External references are
// resolved relative to the working directory.
func (l *Loader) LoadData(ctx context.Context, data []byte) (*schema.Document, error) {
	return l.load(ctx, data, nil)
}

func (l *Loader) load(ctx context.Context, data []byte, location *url.URL) (*schema.Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = l.allowExternalRefs

	var (
		doc *openapi3.T
		err error
	)
	if location != nil {
		doc, err = loader.LoadFromDataWithPath(data, location)
	} else {
		doc, err = loader.LoadFromData(data)
	}
	if err != nil {
		// Dangling references are tolerated: they become plain fields later on
		unresolved, decodeErr := decodeUnresolved(data)
		if decodeErr != nil {
			return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
		}
		zap.S().Warnw("could not dereference document, converting unresolved references as-is", "error", err)
		doc = unresolved
	}

	order, err := extractKeyOrder(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read document key order: %w", err)
	}

	result := convertDocument(doc, order)
	zap.S().Debugw("loaded OpenAPI document", "schemas", len(result.Names))
	return result, nil
}

// LoadFile is a convenience wrapper around NewLoader().LoadFile
func LoadFile(ctx context.Context, path string) (*schema.Document, error) {
	return NewLoader().LoadFile(ctx, path)
}

// LoadData is a convenience wrapper around NewLoader().LoadData
func LoadData(ctx context.Context, data []byte) (*schema.Document, error) {
	return NewLoader().LoadData(ctx, data)
}
