package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	Source       string
	Format       string
	Delimiter    string
	ExportFormat string
	NATSURL      string
	FetchTimeout time.Duration
	NoCache      bool
	LogLevel     string
	LogFormat    string
	ShowVersion  bool
	ShowHelp     bool

	// Command and its inputs, from the positional arguments.
	Command string
	Args    []string
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.Source, "source",
		getEnv("CURIES_SOURCE", "bioregistry"),
		"Registry source: obo, go, monarch, bioregistry, or a file path/URL (env: CURIES_SOURCE)")

	flag.StringVar(&cfg.Source, "s",
		getEnv("CURIES_SOURCE", "bioregistry"),
		"Registry source: obo, go, monarch, bioregistry, or a file path/URL (env: CURIES_SOURCE)")

	flag.StringVar(&cfg.Format, "format",
		getEnv("CURIES_FORMAT", "auto"),
		"Source format: auto, epm, map, jsonld, shacl (env: CURIES_FORMAT)")

	flag.StringVar(&cfg.Delimiter, "delimiter",
		getEnv("CURIES_DELIMITER", ":"),
		"CURIE delimiter (env: CURIES_DELIMITER)")

	flag.StringVar(&cfg.ExportFormat, "export-format",
		getEnv("CURIES_EXPORT_FORMAT", "epm"),
		"Export format for the export command: epm, map, jsonld, shacl (env: CURIES_EXPORT_FORMAT)")

	flag.StringVar(&cfg.NATSURL, "nats-url",
		getEnv("CURIES_NATS_URL", "nats://localhost:4222"),
		"NATS server URL for the serve command (env: CURIES_NATS_URL)")

	flag.DurationVar(&cfg.FetchTimeout, "fetch-timeout",
		getEnvDuration("CURIES_FETCH_TIMEOUT", 30*time.Second),
		"Timeout for fetching remote registries (env: CURIES_FETCH_TIMEOUT)")

	flag.BoolVar(&cfg.NoCache, "no-cache",
		getEnvBool("CURIES_NO_CACHE", false),
		"Disable the in-process fetch cache (env: CURIES_NO_CACHE)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("CURIES_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: CURIES_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("CURIES_LOG_FORMAT", "text"),
		"Log format: json, text (env: CURIES_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	if args := flag.Args(); len(args) > 0 {
		cfg.Command = args[0]
		cfg.Args = args[1:]
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	validCommands := []string{"expand", "compress", "standardize", "export", "serve"}
	if cfg.Command == "" {
		return fmt.Errorf("no command given, expected one of: %v", validCommands)
	}
	if !contains(validCommands, cfg.Command) {
		return fmt.Errorf("unknown command: %s", cfg.Command)
	}

	validFormats := []string{"auto", "epm", "map", "jsonld", "shacl"}
	if !contains(validFormats, cfg.Format) {
		return fmt.Errorf("invalid source format: %s", cfg.Format)
	}

	validExportFormats := []string{"epm", "map", "jsonld", "shacl"}
	if !contains(validExportFormats, cfg.ExportFormat) {
		return fmt.Errorf("invalid export format: %s", cfg.ExportFormat)
	}

	if cfg.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - CURIE and URI conversion

Usage: %s [options] <command> [inputs...]

Commands:
  expand       Expand CURIEs to URIs
  compress     Compress URIs to CURIEs
  standardize  Rewrite prefixes, CURIEs, or URIs to their canonical form
  export       Write the loaded registry in the chosen export format
  serve        Serve the registry over NATS request-reply

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Expand against the Bioregistry
  %s expand DOID:1234

  # Compress against a local extended prefix map
  %s --source=registry.epm.json compress http://purl.obolibrary.org/obo/DOID_1234

  # Convert the OBO Foundry context to SHACL
  %s --source=obo --export-format=shacl export

  # Serve the Gene Ontology context over NATS
  export CURIES_NATS_URL=nats://localhost:4222
  %s --source=go serve

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
