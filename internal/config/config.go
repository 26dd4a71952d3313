// Package config handles jdlgen run configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in defaults
const (
	DefaultAPISpec       = "samples/api.yaml"
	DefaultPackageName   = "io.kingstoncloud.app"
	DefaultBaseName      = "SampleApp"
	DefaultJDLOutput     = "output/domain.jdl"
	DefaultPartialsDir   = "partials"
	DefaultEntityPackage = "gen"
)

// Environment variables read by ApplyEnv
const (
	EnvAPISpec       = "JDLGEN_API_SPEC"
	EnvPackageName   = "JDLGEN_PACKAGE_NAME"
	EnvBaseName      = "JDLGEN_BASE_NAME"
	EnvJDLOutput     = "JDLGEN_JDL_OUTPUT"
	EnvPartialsDir   = "JDLGEN_PARTIALS_DIR"
	EnvEntityPackage = "JDLGEN_ENTITY_PACKAGE"
)

// Config represents one generator run
type Config struct {
	APISpec       string `yaml:"apiSpec,omitempty"`
	PackageName   string `yaml:"packageName,omitempty"`
	BaseName      string `yaml:"baseName,omitempty"`
	JDLOutput     string `yaml:"jdlOutput,omitempty"`
	PartialsDir   string `yaml:"partialsDir,omitempty"`
	EntityPackage string `yaml:"entityPackage,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		APISpec:       DefaultAPISpec,
		PackageName:   DefaultPackageName,
		BaseName:      DefaultBaseName,
		JDLOutput:     DefaultJDLOutput,
		PartialsDir:   DefaultPartialsDir,
		EntityPackage: DefaultEntityPackage,
	}
}

// Load reads a Config from a YAML file. Settings absent from the file are left empty.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge overlays the non-empty settings of other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	overlay(&c.APISpec, other.APISpec)
	overlay(&c.PackageName, other.PackageName)
	overlay(&c.BaseName, other.BaseName)
	overlay(&c.JDLOutput, other.JDLOutput)
	overlay(&c.PartialsDir, other.PartialsDir)
	overlay(&c.EntityPackage, other.EntityPackage)
}

// ApplyEnv overlays settings found in the environment
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.Merge(&Config{
		APISpec:       getenv(EnvAPISpec),
		PackageName:   getenv(EnvPackageName),
		BaseName:      getenv(EnvBaseName),
		JDLOutput:     getenv(EnvJDLOutput),
		PartialsDir:   getenv(EnvPartialsDir),
		EntityPackage: getenv(EnvEntityPackage),
	})
}

// Validate checks that the settings a run cannot do without are present
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.APISpec) == "" {
		missing = append(missing, "api-spec")
	}
	if strings.TrimSpace(c.PackageName) == "" {
		missing = append(missing, "package-name")
	}
	if strings.TrimSpace(c.BaseName) == "" {
		missing = append(missing, "base-name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
