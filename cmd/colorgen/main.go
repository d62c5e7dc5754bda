// Package main implements colorgen, which writes color scheme tables into an
// Xcode asset catalog as dynamic light/dark color sets.
//
// Usage:
//
//	colorgen [catalog-path]          generate (default ./Assets.xcassets)
//	colorgen list                    print generated asset names
//	colorgen init                    write a default colorgen.toml
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"tools.zach/dev/colorschemes/internal/catalog"
	"tools.zach/dev/colorschemes/internal/config"
	"tools.zach/dev/colorschemes/internal/logger"
	"tools.zach/dev/colorschemes/internal/paths"
	"tools.zach/dev/colorschemes/internal/scheme"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// resolveVersion returns [version] when set via ldflags; otherwise it builds
// a "dev+<hash>" tag from the VCS info embedded by the Go toolchain.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Console Output
// ///////////////////////////////////////////////

var (
	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
)

// printFailure writes the single failure line for err.
func printFailure(w io.Writer, err error) {
	if errors.Is(err, catalog.ErrNotCatalog) {
		clrError.Fprintln(w, "❌ Point to a `.xcassets` folder!")
		return
	}
	clrError.Fprintf(w, "❌ %v\n", err)
}

// printSuccess reports the number of color sets written and where.
func printSuccess(w io.Writer, res *catalog.Result) {
	clrSuccess.Fprintf(w, "✅ Generated %d colors under %s in:\n", res.ColorSets, paths.GroupDir)
	fmt.Fprintf(w, "   %s\n", res.Root)
}

// ///////////////////////////////////////////////
// Commands
// ///////////////////////////////////////////////

// options holds flag values shared by all commands.
type options struct {
	configPath  string
	schemesFile string
	only        []string
	strictHex   bool
	logLevel    string
	logFile     string
	force       bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		printFailure(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "colorgen [catalog-path]",
		Short:         "colorgen – color scheme to asset catalog generator",
		Long:          "colorgen writes every scheme role as a light/dark color set under ColorSchemes/ in an .xcassets folder.",
		Version:       resolveVersion(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", paths.ConfigFile, "Config file (missing file means defaults)")
	pf.StringVar(&opts.schemesFile, "schemes", "", "Scheme table TOML file (default: built-in table)")
	pf.StringArrayVar(&opts.only, "only", nil, "Only generate schemes matching this glob (repeatable, e.g. '{Ocean*,Soft*}')")
	pf.BoolVar(&opts.strictHex, "strict-hex", false, "Reject colors without a leading '#'")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.StringVar(&opts.logFile, "log-file", "", "Also write logs to this file, rotated by size")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the asset name of every generated color",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, stdout)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, stdout)
		},
	}
	initCmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing config file")

	root.AddCommand(listCmd, initCmd)
	return root
}

// loadConfig layers config file, .env, environment and explicit flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	env, err := config.Environment(paths.EnvFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("schemes") {
		cfg.Schemes.File = opts.schemesFile
	}
	if flags.Changed("only") {
		cfg.Schemes.Only = opts.only
	}
	if flags.Changed("strict-hex") {
		cfg.Schemes.StrictHex = opts.strictHex
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTable returns the configured scheme table, filtered.
func loadTable(cfg *config.Config) (*scheme.Table, error) {
	var (
		t   *scheme.Table
		err error
	)
	if cfg.Schemes.File != "" {
		t, err = scheme.Load(cfg.Schemes.File)
	} else {
		t, err = scheme.Default()
	}
	if err != nil {
		return nil, err
	}
	return t.Filter(cfg.Schemes.Only)
}

func runGenerate(cmd *cobra.Command, args []string, opts *options, stdout, stderr io.Writer) error {
	// An explicit destination is checked before anything else is touched.
	if len(args) == 1 {
		if err := catalog.CheckRoot(args[0]); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	root := cfg.Catalog.Path
	if len(args) == 1 {
		root = args[0]
	} else if !filepath.IsAbs(root) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		root = filepath.Join(wd, root)
	}

	log, closer := logger.New(stderr, logger.Options{
		Level:     logger.ParseLevel(cfg.Log.Level),
		File:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	defer closer.Close()

	t, err := loadTable(cfg)
	if err != nil {
		logger.Fail(log, "load schemes failed", "error", err)
		return err
	}
	log.Debug("schemes loaded", "count", len(t.Schemes), "source", sourceName(cfg))

	res, err := catalog.Build(t, root, catalog.Options{
		Resolve: scheme.ResolveOptions{StrictHex: cfg.Schemes.StrictHex},
		Logger:  log,
	})
	if err != nil {
		logger.Fail(log, "generate failed", "root", root, "error", err)
		return err
	}

	log.Info("catalog generated",
		"root", res.Root,
		"schemes", res.Schemes,
		"color_sets", res.ColorSets,
		"fallbacks", res.Fallbacks,
		"changed", res.Changed,
	)
	printSuccess(stdout, res)
	return nil
}

func runList(cmd *cobra.Command, opts *options, stdout io.Writer) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	t, err := loadTable(cfg)
	if err != nil {
		return err
	}
	for _, name := range catalog.Names(t) {
		fmt.Fprintln(stdout, name)
	}
	return nil
}

func runInit(opts *options, stdout io.Writer) error {
	if _, err := os.Stat(opts.configPath); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
	}
	if err := config.DefaultConfig().Save(opts.configPath); err != nil {
		return fmt.Errorf("write %s: %w", opts.configPath, err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", opts.configPath)
	return nil
}

// sourceName describes where the scheme table came from, for logs.
func sourceName(cfg *config.Config) string {
	if cfg.Schemes.File != "" {
		return cfg.Schemes.File
	}
	return "built-in"
}
