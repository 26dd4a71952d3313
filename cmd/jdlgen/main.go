package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tordrt/jdlgen"
	"github.com/tordrt/jdlgen/internal/config"
)

var (
	apiSpec       string
	packageName   string
	baseName      string
	jdlOutput     string
	partialsDir   string
	entityPackage string
	configFile    string
	verbose       bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jdlgen",
		Short: "Generate a JDL domain model from an OpenAPI document",
		Long: `jdlgen reads the component schemas of an OpenAPI v3 document and writes the
entities, enums and relationships they describe as a JDL file.

Settings are taken from built-in defaults, then the --config file, then
JDLGEN_* environment variables (a .env file is loaded if present), then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	registerFlags(cmd)
	return cmd
}

func registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&apiSpec, "api-spec", config.DefaultAPISpec, "OpenAPI document, YAML or JSON")
	cmd.Flags().StringVar(&packageName, "package-name", config.DefaultPackageName, "Java package of the application")
	cmd.Flags().StringVar(&baseName, "base-name", config.DefaultBaseName, "Application name")
	cmd.Flags().StringVar(&jdlOutput, "jdl-output", config.DefaultJDLOutput, "Output JDL file")
	cmd.Flags().StringVar(&partialsDir, "partials-dir", config.DefaultPartialsDir, "Directory with app_config.jdl and global_options.jdl overrides")
	cmd.Flags().StringVar(&entityPackage, "entity-package", config.DefaultEntityPackage, "Package of entities without x-package-name")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	defer zap.ReplaceGlobals(logger)()

	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}

	zap.S().Infow("generating JDL",
		"apiSpec", cfg.APISpec,
		"packageName", cfg.PackageName,
		"baseName", cfg.BaseName,
		"output", cfg.JDLOutput)

	return jdlgen.GenerateFile(cmd.Context(), cfg.APISpec, cfg.JDLOutput, &jdlgen.Options{
		PackageName:   cfg.PackageName,
		BaseName:      cfg.BaseName,
		EntityPackage: cfg.EntityPackage,
		PartialsDir:   cfg.PartialsDir,
	})
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zap.NewDevelopmentEncoderConfig().EncodeTime
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// resolveConfig layers defaults, the config file, the environment and the
// flags set on the command line, in increasing precedence
func resolveConfig(cmd *cobra.Command, getenv func(string) string) (*config.Config, error) {
	flags := cmd.Flags()
	cfg := config.Default()

	if path, _ := flags.GetString("config"); path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.Merge(fileCfg)
	}

	cfg.ApplyEnv(getenv)

	// An explicitly empty flag clears the setting so that validation reports it
	for name, dst := range map[string]*string{
		"api-spec":       &cfg.APISpec,
		"package-name":   &cfg.PackageName,
		"base-name":      &cfg.BaseName,
		"jdl-output":     &cfg.JDLOutput,
		"partials-dir":   &cfg.PartialsDir,
		"entity-package": &cfg.EntityPackage,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
