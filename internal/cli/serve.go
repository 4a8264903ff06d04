package cli

import (
	"context"
	"net"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depscan/pkg/config"
	"github.com/matzehuels/depscan/pkg/errors"
	"github.com/matzehuels/depscan/pkg/io"
	"github.com/matzehuels/depscan/pkg/scan"
	"github.com/matzehuels/depscan/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	storeDir string // file report store
	mongoURI string // mongodb report store
	database string // mongodb database
	id       string // report ID (default: latest)
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, database: config.DefaultDatabase}

	cmd := &cobra.Command{
		Use:   "serve [report.json]",
		Short: "Serve a report over a read-only HTTP API",
		Long: `Serve exposes a report as JSON over HTTP. The report is read from a file written
by "depscan scan -o", or loaded from a report store.`,
		Example: `  depscan serve deps.json
  depscan serve --store-dir ~/.config/depscan/reports --addr :9000
  depscan serve --mongo-uri mongodb://localhost:27017 --id 7d3c1b52-2f7e-4f0e-9d1c-0c8f2f7f4a11`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := loadServeReport(cmd.Context(), args, opts)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), report, opts.addr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	f.StringVar(&opts.storeDir, "store-dir", "", "load the report from this directory")
	f.StringVar(&opts.mongoURI, "mongo-uri", "", "load the report from mongodb")
	f.StringVar(&opts.database, "database", config.DefaultDatabase, "mongodb database")
	f.StringVar(&opts.id, "id", "", "report ID to load from the store (default: latest)")

	cmd.MarkFlagsMutuallyExclusive("store-dir", "mongo-uri")

	return cmd
}

func loadServeReport(ctx context.Context, args []string, opts serveOpts) (*scan.Report, error) {
	if len(args) == 1 {
		result, err := io.ImportJSON(args[0])
		if err != nil {
			return nil, err
		}
		return &scan.Report{ID: uuid.NewString(), Root: args[0], Result: result}, nil
	}

	st, err := newStore(ctx, config.StoreConfig{Dir: opts.storeDir, MongoURI: opts.mongoURI, Database: opts.database})
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "give a report file or --store-dir/--mongo-uri")
	}
	defer st.Close()

	if opts.id != "" {
		return st.Get(ctx, opts.id)
	}
	return st.Latest(ctx)
}

func runServe(ctx context.Context, report *scan.Report, addr string) error {
	logger := loggerFromContext(ctx)

	srv := server.New(report, server.Options{Logger: logger.Infof})

	printInfo("Serving %d dependencies on %s", report.Result.Len(), StyleHighlight.Render(addr))
	printNextStep("Try", "curl http://localhost"+portOf(addr)+"/api/dependencies")

	return srv.ListenAndServe(ctx, addr)
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return ""
	}
	return ":" + port
}
