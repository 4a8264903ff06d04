package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscan/pkg/cache"
	"github.com/matzehuels/depscan/pkg/config"
	"github.com/matzehuels/depscan/pkg/deps/dialects"
	"github.com/matzehuels/depscan/pkg/errors"
	reportio "github.com/matzehuels/depscan/pkg/io"
	"github.com/matzehuels/depscan/pkg/scan"
)

// Output formats for the scan command.
const (
	formatTable = "table" // lipgloss table
	formatPlain = "plain" // name and version columns only
	formatJSON  = "json"  // report JSON on stdout
	formatDOT   = "dot"   // Graphviz DOT on stdout
)

// scanOpts holds the command-line flags for the scan command.
// Zero values leave the configuration file (or built-in default) in effect.
type scanOpts struct {
	output      string   // JSON report path
	errorLog    string   // error log path
	format      string   // console output format
	configPath  string   // explicit config file
	workers     int      // parallel extraction workers
	exclude     []string // base-name globs to skip
	cache       bool     // file cache in the default directory
	cacheDir    string   // file cache directory
	redisURL    string   // redis cache URL
	noCache     bool     // disable the extraction cache
	storeDir    string   // file report store directory
	mongoURI    string   // mongodb report store URI
	interactive bool     // browse results in a TUI
}

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	opts := scanOpts{format: formatTable}

	cmd := &cobra.Command{
		Use:   "scan <project-dir>",
		Short: "Scan a C/C++ project for third-party dependencies",
		Long: `Scan walks the project tree and detects dependencies in:

  CMakeLists.txt   find_package(<Name> <version>)
  conanfile.*      <name>/<version>@ references
  vcpkg.json       "dependencies" entries
  *.cpp *.hpp *.h *.cc
                   #include <lib/...> and #define <LIB>_VERSION <version>

Files that cannot be read are recorded in the error log and never stop the scan.`,
		Example: `  depscan scan ./project
  depscan scan ./project -o deps.json
  depscan scan ./project --format json --workers 8 --cache-dir ~/.cache/depscan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.scanConfig(cmd, args[0], opts)
			if err != nil {
				return err
			}
			return c.runScan(cmd.Context(), cmd.OutOrStdout(), args[0], cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "write the report as JSON to this file")
	f.StringVar(&opts.errorLog, "error-log", reportio.DefaultErrorLog, "file receiving per-file errors")
	f.StringVarP(&opts.format, "format", "f", formatTable, "console format: table, plain, json, dot")
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default: .depscan.toml/.yaml in project, cwd or ~/.config/depscan)")
	f.IntVarP(&opts.workers, "workers", "w", 1, "parallel extraction workers")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "skip files and directories matching these base-name globs")
	f.BoolVar(&opts.cache, "cache", false, "cache extraction results in the default cache directory")
	f.StringVar(&opts.cacheDir, "cache-dir", "", "cache extraction results in this directory")
	f.StringVar(&opts.redisURL, "redis-url", "", "cache extraction results in redis")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the extraction cache")
	f.StringVar(&opts.storeDir, "store-dir", "", "save the report in this directory")
	f.StringVar(&opts.mongoURI, "mongo-uri", "", "save the report in mongodb")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "browse results interactively")

	cmd.MarkFlagsMutuallyExclusive("cache", "cache-dir", "redis-url", "no-cache")
	cmd.MarkFlagsMutuallyExclusive("store-dir", "mongo-uri")
	cmd.MarkFlagsMutuallyExclusive("interactive", "format")

	return cmd
}

// scanConfig loads the configuration and applies explicitly set flags on top.
func (c *CLI) scanConfig(cmd *cobra.Command, root string, opts scanOpts) (*config.Config, error) {
	cfg, err := loadConfig(c.Logger, opts.configPath, root)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("error-log") {
		cfg.ErrorLog = opts.errorLog
	}
	if f.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if f.Changed("exclude") {
		cfg.Exclude = opts.exclude
	}
	if opts.cache {
		dir, err := cacheDir()
		if err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
		cfg.Cache = config.CacheConfig{Dir: dir, TTL: cfg.Cache.TTL}
	}
	if f.Changed("cache-dir") {
		cfg.Cache = config.CacheConfig{Dir: opts.cacheDir, TTL: cfg.Cache.TTL}
	}
	if f.Changed("redis-url") {
		cfg.Cache = config.CacheConfig{RedisURL: opts.redisURL, TTL: cfg.Cache.TTL}
	}
	if opts.noCache {
		cfg.Cache = config.CacheConfig{TTL: cfg.Cache.TTL}
	}
	if f.Changed("store-dir") {
		cfg.Store = config.StoreConfig{Dir: opts.storeDir, Database: cfg.Store.Database}
	}
	if f.Changed("mongo-uri") {
		cfg.Store = config.StoreConfig{MongoURI: opts.mongoURI, Database: cfg.Store.Database}
	}

	switch opts.format {
	case formatTable, formatPlain, formatJSON, formatDOT:
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want table, plain, json or dot)", opts.format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *CLI) runScan(ctx context.Context, w io.Writer, root string, cfg *config.Config, opts scanOpts) error {
	logger := loggerFromContext(ctx)

	if opts.format == formatJSON || opts.format == formatDOT {
		prev := out
		out = os.Stderr
		defer func() { out = prev }()
	}

	if err := reportio.ResetErrorLog(cfg.ErrorLog); err != nil {
		return err
	}

	extractCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	if extractCache != nil {
		defer extractCache.Close()
	}
	ttl, _ := cfg.CacheTTL()
	scope := cache.HashParts(cfg.SourceExtensions, cfg.StdlibExclusions)

	spinner := newSpinnerWithContext(ctx, "Scanning "+root)
	defer useHooks(logger, spinner)()

	prog := newProgress(logger)
	spinner.Start()
	report, err := scan.Run(ctx, root, scan.Options{
		Extractors: dialects.All(dialects.Options{
			SourceExtensions: cfg.SourceExtensions,
			StdlibExclusions: cfg.StdlibExclusions,
		}),
		Exclude:  cfg.Exclude,
		Workers:  cfg.Workers,
		Cache:    extractCache,
		Keyer:    cache.NewScopedKeyer(cache.NewDefaultKeyer(), "cfg:"+scope+":"),
		CacheTTL: ttl,
		Logger:   logger.Warnf,
		OnError:  logFileError(logger, cfg.ErrorLog),
	})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Scanned %d files, %d matched", report.FilesVisited, report.FilesMatched))

	if err := c.saveReport(ctx, logger, cfg.Store, report); err != nil {
		logger.Warn("could not save report", "err", err)
	}

	if opts.interactive {
		if err := browse(report); err != nil {
			return err
		}
	}
	if err := writeReport(w, report, opts.format); err != nil {
		return err
	}
	if opts.format == formatTable {
		printSummary(report)
	}

	if opts.output != "" {
		if err := reportio.ExportJSON(report.Result, opts.output); err != nil {
			return err
		}
		printNewline()
		printSuccess("Results saved to %s", opts.output)
	}

	if report.ErrorCount() > 0 {
		printNewline()
		printWarning("Some errors occurred during processing. Check %s for details.", cfg.ErrorLog)
	}
	return nil
}

// logFileError returns the scan error callback: each file error is logged and
// appended to the error log as it happens, so a cancelled scan keeps the
// errors seen so far.
func logFileError(logger *log.Logger, path string) func(scan.FileError) {
	return func(fe scan.FileError) {
		logger.Error(fe.Error())
		if err := reportio.AppendErrorLog(path, fe); err != nil {
			logger.Warn("could not write error log", "path", path, "err", err)
		}
	}
}

func (c *CLI) saveReport(ctx context.Context, logger *log.Logger, cfg config.StoreConfig, report *scan.Report) error {
	st, err := newStore(ctx, cfg)
	if err != nil || st == nil {
		return err
	}
	defer st.Close()

	if err := st.Save(ctx, report); err != nil {
		return err
	}
	logger.Debug("report saved", "id", report.ID)
	return nil
}
