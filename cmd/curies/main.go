// Package main implements the curies command line tool: expand, compress,
// and standardize identifiers against a prefix registry, convert registries
// between formats, and serve conversions over NATS.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/curies"
	"github.com/c360/curies/fetch"
	"github.com/c360/curies/loader"
	"github.com/c360/curies/service"
	"github.com/c360/curies/sources"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "curies"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Command failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cfg := parseFlags()
	if err := validateFlags(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx := context.Background()
	converter, err := loadConverter(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	slog.Debug("registry loaded", "source", cfg.Source, "records", converter.Len())

	switch cfg.Command {
	case "expand":
		return runExpand(converter, cfg.Args)
	case "compress":
		return runCompress(converter, cfg.Args)
	case "standardize":
		return runStandardize(converter, cfg.Args)
	case "export":
		return runExport(converter, cfg.ExportFormat)
	case "serve":
		return runServe(converter, cfg, logger)
	}
	return fmt.Errorf("unknown command: %s", cfg.Command)
}

// namedSources maps the bundled registry names to their document URL and
// format.
var namedSources = map[string]struct {
	url    string
	format string
}{
	"obo":         {sources.OBOContextURL, "jsonld"},
	"go":          {sources.GOContextURL, "jsonld"},
	"monarch":     {sources.MonarchContextURL, "jsonld"},
	"bioregistry": {sources.BioregistryURL, "epm"},
}

// loadConverter resolves the source flag to a registry document and builds
// a converter from it.
func loadConverter(ctx context.Context, cfg *CLIConfig) (*curies.Converter, error) {
	source := cfg.Source
	format := cfg.Format

	if named, ok := namedSources[source]; ok {
		source = named.url
		if format == "auto" {
			format = named.format
		}
	}
	if format == "auto" {
		format = detectFormat(source)
	}

	clientOpts := []fetch.Option{fetch.WithTimeout(cfg.FetchTimeout)}
	if cfg.NoCache {
		clientOpts = append(clientOpts, fetch.WithCacheTTL(0))
	}
	data, err := fetch.NewClient(clientOpts...).Document(ctx, source)
	if err != nil {
		return nil, err
	}

	opts := []curies.Option{curies.WithDelimiter(cfg.Delimiter)}
	switch format {
	case "epm":
		return loader.ConverterFromExtendedPrefixMap(data, opts...)
	case "map":
		if isYAML(source) {
			return loader.ConverterFromPrefixMapYAML(data, opts...)
		}
		return loader.ConverterFromPrefixMap(data, opts...)
	case "jsonld":
		return loader.ConverterFromJSONLD(data, opts...)
	case "shacl":
		return loader.ConverterFromSHACL(data, opts...)
	}
	return nil, fmt.Errorf("unknown source format: %s", format)
}

// detectFormat guesses a registry format from the source name. JSON
// documents default to the extended prefix map; a simple prefix map has to
// be requested explicitly.
func detectFormat(source string) string {
	switch {
	case strings.HasSuffix(source, ".jsonld"):
		return "jsonld"
	case strings.HasSuffix(source, ".ttl"):
		return "shacl"
	case isYAML(source):
		return "map"
	default:
		return "epm"
	}
}

func isYAML(source string) bool {
	return strings.HasSuffix(source, ".yaml") || strings.HasSuffix(source, ".yml")
}

func runExpand(converter *curies.Converter, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expand requires at least one CURIE")
	}
	for _, curie := range args {
		uri, err := converter.Expand(curie)
		if err != nil {
			return fmt.Errorf("expand %s: %w", curie, err)
		}
		fmt.Println(uri)
	}
	return nil
}

func runCompress(converter *curies.Converter, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("compress requires at least one URI")
	}
	for _, uri := range args {
		curie, err := converter.Compress(uri)
		if err != nil {
			return fmt.Errorf("compress %s: %w", uri, err)
		}
		fmt.Println(curie)
	}
	return nil
}

// runStandardize rewrites each input to its canonical form, deciding per
// input whether it is a CURIE, a URI, or a bare prefix.
func runStandardize(converter *curies.Converter, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("standardize requires at least one input")
	}
	for _, input := range args {
		var out string
		var err error
		switch {
		case converter.IsURI(input):
			out, err = converter.StandardizeURI(input)
		case strings.Contains(input, converter.Delimiter()):
			out, err = converter.StandardizeCURIE(input)
		default:
			out, err = converter.StandardizePrefix(input)
		}
		if err != nil {
			return fmt.Errorf("standardize %s: %w", input, err)
		}
		fmt.Println(out)
	}
	return nil
}

func runExport(converter *curies.Converter, format string) error {
	switch format {
	case "epm":
		doc, err := converter.WriteExtendedPrefixMap()
		if err != nil {
			return err
		}
		fmt.Println(doc)
	case "map":
		for _, prefix := range converter.GetPrefixes(false) {
			record, err := converter.FindByPrefix(prefix)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", prefix, record.URIPrefix)
		}
	case "jsonld":
		data, err := json.MarshalIndent(converter.WriteJSONLD(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "shacl":
		doc, err := converter.WriteSHACL()
		if err != nil {
			return err
		}
		fmt.Println(doc)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	return nil
}

// runServe connects to NATS and serves the registry until interrupted.
func runServe(converter *curies.Converter, cfg *CLIConfig, logger *slog.Logger) error {
	conn, err := nats.Connect(cfg.NATSURL, nats.Name(appName))
	if err != nil {
		return fmt.Errorf("connect to NATS at %s: %w", cfg.NATSURL, err)
	}
	defer conn.Close()

	svc, err := service.New(conn, converter,
		service.WithLogger(logger),
		service.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	if err := svc.Start(); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	slog.Info("serving conversions", "nats_url", cfg.NATSURL, "records", converter.Len())

	signalCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	if err := svc.Stop(); err != nil {
		return fmt.Errorf("stop service: %w", err)
	}
	return conn.Drain()
}
