// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"golang.org/x/term"

	"github.com/bureau-foundation/dynview/lib/adapter"
	"github.com/bureau-foundation/dynview/lib/binding"
	"github.com/bureau-foundation/dynview/lib/config"
	"github.com/bureau-foundation/dynview/lib/doccache"
	"github.com/bureau-foundation/dynview/lib/document"
	"github.com/bureau-foundation/dynview/lib/inflate"
	"github.com/bureau-foundation/dynview/lib/logging"
	"github.com/bureau-foundation/dynview/lib/property"
)

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	format     string
	noCache    bool
}

func (flags *commonFlags) add(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.configPath, "config", "", "config file (default: $DYNVIEW_CONFIG, else built-in defaults)")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn, or error (overrides config)")
	flagSet.StringVar(&flags.logFormat, "log-format", "", "auto, text, or json (overrides config)")
	flagSet.StringVar(&flags.format, "format", "", "document format: xml, json, or yaml (default: from the file extension)")
	flagSet.BoolVar(&flags.noCache, "no-cache", false, "do not read or write the parsed-document cache")
	flagSet.BoolP("help", "h", false, "show help")
}

// recordFlags select the data record a document is bound to.
type recordFlags struct {
	dataPath string
	row      int
	sets     []string
}

func (flags *recordFlags) add(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.dataPath, "data", "", "JSON file holding an object, or an array of rows")
	flagSet.IntVar(&flags.row, "row", 0, "row to bind when --data holds an array")
	flagSet.StringArrayVar(&flags.sets, "set", nil, "path=value overriding the data record (repeatable)")
}

// parseFlags parses args, handling --help. It returns done=true when
// help was printed.
func parseFlags(flagSet *pflag.FlagSet, args []string, stdout io.Writer, usage string) (done bool, err error) {
	flagSet.SetOutput(io.Discard)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printCommandHelp(stdout, flagSet, usage)
			return true, nil
		}
		return false, validation("%v", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printCommandHelp(stdout, flagSet, usage)
		return true, nil
	}
	return false, nil
}

func printCommandHelp(output io.Writer, flagSet *pflag.FlagSet, usage string) {
	fmt.Fprintf(output, "%s\nFlags:\n", usage)
	flagSet.SetOutput(output)
	flagSet.PrintDefaults()
}

// session holds what a command needs after flag parsing.
type session struct {
	config   *config.Config
	logger   *slog.Logger
	cache    *doccache.Cache
	observer property.Observer
	format   string
	stdout   io.Writer
}

func (s *session) Close() {
	if err := s.cache.Close(); err != nil {
		s.logger.Warn("closing document cache", "error", err)
	}
}

// openSession loads configuration, builds the logger, and opens the
// cache. A cache that cannot be opened is logged and skipped.
func openSession(flags *commonFlags, stdout, stderr io.Writer) (*session, error) {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	if flags.noCache {
		cfg.Cache.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, validation("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, validation("%w", err)
	}
	logger, err := logging.NewWriter(stderr, level, cfg.Log.Format, isTerminal(stderr))
	if err != nil {
		return nil, validation("%w", err)
	}

	s := &session{
		config:   cfg,
		logger:   logger,
		observer: property.NewLogObserver(logger),
		format:   flags.format,
		stdout:   stdout,
	}
	if cfg.Cache.Enabled {
		cache, err := doccache.Open(cfg.Cache.Path)
		if err != nil {
			// The cache only saves parse time.
			logger.Warn("document cache unavailable", "path", cfg.Cache.Path, "error", err)
		} else {
			s.cache = cache
		}
	}
	return s, nil
}

func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		cfg, err := config.LoadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, notFound("config file %s does not exist", path)
			}
			return nil, validation("loading config: %w", err)
		}
		return cfg, nil
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err := config.Load()
		if err != nil {
			return nil, validation("loading config: %w", err)
		}
		return cfg, nil
	default:
		cfg := config.Default()
		cfg.Expand()
		return cfg, nil
	}
}

// compile reads, parses, and compiles the document at path.
func (s *session) compile(path string) (*inflate.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound("document %s does not exist", path)
		}
		return nil, internal("reading document: %w", err)
	}

	var format document.Format
	if s.format != "" {
		format, err = document.ParseFormat(s.format)
	} else {
		format, err = document.FormatFromPath(path)
	}
	if err != nil {
		return nil, validation("%w", err)
	}

	root, err := doccache.ParseCached(s.cache, data, format)
	var cacheErr *doccache.CacheError
	if errors.As(err, &cacheErr) {
		s.logger.Warn("document cache", "error", cacheErr.Err)
		err = nil
	}
	if err != nil {
		return nil, validation("%s: %w", path, err)
	}

	tree := inflate.Compile(root, s.observer)
	s.logger.Debug("compiled document",
		"path", path,
		"format", format,
		"nodes", tree.Len(),
		"names", tree.Registry().Len(),
	)
	return tree, nil
}

// readRows reads a JSON array of rows.
func readRows(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound("data file %s does not exist", path)
		}
		return nil, internal("reading data: %w", err)
	}
	rows, err := adapter.ParseDataSource(data)
	if err != nil {
		return nil, validation("%s: %w", path, err)
	}
	return rows, nil
}

// record builds the record selected by flags. Without --data and
// --set the record is nil, so every placeholder binds as missing.
func (flags *recordFlags) record() (binding.Record, error) {
	var layers binding.Layers

	if len(flags.sets) > 0 {
		overrides := make(binding.MapRecord, len(flags.sets))
		for _, assignment := range flags.sets {
			path, value, ok := strings.Cut(assignment, "=")
			if !ok || path == "" {
				return nil, validation("--set %q: want path=value", assignment)
			}
			overrides[path] = value
		}
		layers = append(layers, overrides)
	}

	if flags.dataPath != "" {
		base, err := flags.dataRecord()
		if err != nil {
			return nil, err
		}
		layers = append(layers, base)
	}

	if len(layers) == 0 {
		return nil, nil
	}
	return layers, nil
}

func (flags *recordFlags) dataRecord() (binding.Record, error) {
	data, err := os.ReadFile(flags.dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound("data file %s does not exist", flags.dataPath)
		}
		return nil, internal("reading data: %w", err)
	}

	if !bytes.HasPrefix(bytes.TrimSpace(jsonc.ToJSON(data)), []byte("[")) {
		record, err := binding.ParseJSONRecord(data)
		if err != nil {
			return nil, validation("%s: %w", flags.dataPath, err)
		}
		return record, nil
	}

	rows, err := adapter.ParseDataSource(data)
	if err != nil {
		return nil, validation("%s: %w", flags.dataPath, err)
	}
	if flags.row < 0 || flags.row >= len(rows) {
		return nil, validation("--row %d out of range: %s has %s", flags.row, flags.dataPath, plural(len(rows), "row"))
	}
	grid := adapter.NewGridAdapter(nil)
	grid.SetDataSource(rows)
	record := grid.Item(flags.row)
	if record == nil {
		return nil, validation("row %d of %s is not an object", flags.row, flags.dataPath)
	}
	return record, nil
}

func plural(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(count) + " " + noun + "s"
}

func isTerminal(output io.Writer) bool {
	file, ok := output.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// colorProfile picks the color profile for output: terminal color for
// a TTY, plain text otherwise. mode "always" and "never" override.
func colorProfile(output io.Writer, mode string) (termenv.Profile, error) {
	switch mode {
	case "never":
		return termenv.Ascii, nil
	case "always":
		return termenv.ANSI256, nil
	case "auto", "":
		if isTerminal(output) {
			return termenv.NewOutput(output).EnvColorProfile(), nil
		}
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, validation("--color %q: want auto, always, or never", mode)
	}
}
