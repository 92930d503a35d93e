// Package cmd implements the savinfo command line.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/savkit"
	"github.com/arloliu/savkit/compress"
	"github.com/arloliu/savkit/savefile"
	"github.com/arloliu/savkit/typetable"
)

// app holds the state shared by every subcommand once flags and config are resolved.
type app struct {
	configPath string
	types      string
	names      string
	markers    string
	locations  string
	color      string
	backup     string
	logLevel   string

	cfg        *Config
	logger     *slog.Logger
	table      *typetable.Table
	out        *printer
	markerUI   map[string]string
	locationUI map[string]string
}

// Execute runs the savinfo command line and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "savinfo",
		Short: "Inspect game savefiles",
		Long: `savinfo reads savefiles made of hashed 8-byte slots and prints their
contents using a type table that maps field hashes to kinds.

Savefiles are never modified: patch only reports what a document would change.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (YAML)")
	flags.StringVarP(&a.types, "types", "t", "", "type table file (JSON or YAML)")
	flags.StringVar(&a.names, "names", "", "field name list used to label hashes")
	flags.StringVar(&a.markers, "markers", "", "location marker display names (JSON)")
	flags.StringVar(&a.locations, "locations", "", "location notes (JSON)")
	flags.StringVar(&a.color, "color", "", "color output: auto, always or never")
	flags.StringVar(&a.backup, "backup", "", "patch preview snapshot compression: none, zstd, s2 or lz4")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newInfoCmd(a),
		newCaptionCmd(a),
		newGetCmd(a),
		newDumpCmd(a),
		newDiffCmd(a),
		newPatchCmd(a),
		newTypesCmd(a),
	)

	return root
}

// setup resolves the configuration (defaults, then config file, then flags) and loads the
// type table and localization files it names.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := DefaultConfig()
	if a.configPath != "" {
		loaded, err := LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
		}
	}
	override("types", &cfg.Types, a.types)
	override("names", &cfg.Names, a.names)
	override("markers", &cfg.Markers, a.markers)
	override("locations", &cfg.Locations, a.locations)
	override("color", &cfg.Color, a.color)
	override("backup", &cfg.Backup, a.backup)
	override("log-level", &cfg.Logging.Level, a.logLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := parseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.out = newPrinter(cmd.OutOrStdout(), cfg.Color)

	var opts []typetable.Option
	if cfg.Names != "" {
		names, err := typetable.LoadNames(cfg.Names)
		if err != nil {
			return err
		}
		opts = append(opts, typetable.WithNames(names...))
	}
	a.table, err = savkit.LoadTypes(cfg.Types, opts...)
	if err != nil {
		return err
	}
	for h, names := range a.table.Collisions() {
		a.logger.Warn("field names collide", slog.String("hash", fmt.Sprintf("0x%08x", h)), slog.Any("names", names))
	}
	a.logger.Debug("type table loaded", slog.String("path", cfg.Types), slog.Int("entries", a.table.Len()))

	if a.markerUI, err = loadLocalization(cfg.Markers); err != nil {
		return err
	}
	if a.locationUI, err = loadLocalization(cfg.Locations); err != nil {
		return err
	}

	return nil
}

// open loads a savefile with the shared table, logger and snapshot compression.
func (a *app) open(path string) (*savefile.Savefile, error) {
	ct, err := compress.ParseCompression(a.cfg.Backup)
	if err != nil {
		return nil, err
	}

	return savkit.Open(path, a.table, savefile.WithLogger(a.logger), savefile.WithBackupCompression(ct))
}

// label names a field hash, falling back to its hex form.
func (a *app) label(h uint32) string {
	if name, ok := a.table.Name(h); ok {
		return name
	}

	return fmt.Sprintf("0x%08x", h)
}

// markerName returns the display name of a location identifier, trying it with and without
// the Location_ prefix.
func (a *app) markerName(id string) string {
	if name, ok := a.markerUI[id]; ok {
		return name
	}
	if name, ok := a.markerUI[strings.TrimPrefix(id, "Location_")]; ok {
		return name
	}

	return id
}

// loadLocalization reads a JSON object of identifier to display string. An empty path yields
// an empty table.
func loadLocalization(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open localization table: %w", err)
	}
	defer f.Close()

	return decodeLocalization(f)
}

func decodeLocalization(r io.Reader) (map[string]string, error) {
	table := map[string]string{}
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return nil, fmt.Errorf("failed to parse localization table: %w", err)
	}

	return table, nil
}
