package jdlgen

import "errors"

// Usage describes the command-line surface
const Usage = "usage: jdlgen --api-spec=<path> --package-name=<java-package> --base-name=<app-name> [--jdl-output=<path>]"

var (
	// ErrUsage is returned when the spec path, package name or base name is missing.
	// Its message is the usage text.
	ErrUsage = errors.New(Usage)

	// ErrParse is returned when the OpenAPI document cannot be read or parsed
	ErrParse = errors.New("failed to load OpenAPI document")

	// ErrOutput is returned when the JDL output cannot be written
	ErrOutput = errors.New("failed to write JDL output")
)
