package formatter

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"
)

// Override file names looked up in the partials directory
const (
	AppConfigFile     = "app_config.jdl"
	GlobalOptionsFile = "global_options.jdl"
)

//go:embed templates/*.jdl.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.jdl.tmpl"))

// Header holds the two blocks written ahead of the entities
type Header struct {
	AppConfig     string
	GlobalOptions string
}

// HeaderData is substituted into the built-in application config block
type HeaderData struct {
	BaseName    string
	PackageName string
}

// DefaultHeader renders the built-in header blocks
func DefaultHeader(data HeaderData) (Header, error) {
	appConfig, err := render(AppConfigFile, data)
	if err != nil {
		return Header{}, err
	}
	options, err := render(GlobalOptionsFile, data)
	if err != nil {
		return Header{}, err
	}
	return Header{AppConfig: appConfig, GlobalOptions: options}, nil
}

// LoadHeader returns the built-in header with each block replaced verbatim by
// the matching override file in dir, when one exists and is non-empty.
// An empty dir disables overrides.
func LoadHeader(dir string, data HeaderData) (Header, error) {
	h, err := DefaultHeader(data)
	if err != nil {
		return Header{}, err
	}
	if dir == "" {
		return h, nil
	}

	h.AppConfig = readOverride(filepath.Join(dir, AppConfigFile), h.AppConfig)
	h.GlobalOptions = readOverride(filepath.Join(dir, GlobalOptionsFile), h.GlobalOptions)
	return h, nil
}

func render(name string, data HeaderData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// readOverride never fails: a missing or unreadable file keeps the default
func readOverride(path, fallback string) string {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		zap.S().Debugw("no header override, using built-in default", "path", path)
		return fallback
	case err != nil:
		zap.S().Debugw("unreadable header override, using built-in default", "path", path, "error", err)
		return fallback
	case strings.TrimSpace(string(data)) == "":
		zap.S().Debugw("empty header override, using built-in default", "path", path)
		return fallback
	}
	zap.S().Debugw("using header override", "path", path)
	return string(data)
}
