// File: internal/cli/cli.go (complete file)

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/baptistax/nettxt/internal/config"
	"github.com/baptistax/nettxt/internal/filter"
	"github.com/baptistax/nettxt/internal/logging"
	"github.com/baptistax/nettxt/internal/monitor"
	"github.com/baptistax/nettxt/internal/report"
	"github.com/baptistax/nettxt/internal/statefile"
	"github.com/baptistax/nettxt/internal/tracker"
	"github.com/baptistax/nettxt/internal/version"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

type usageError struct{ err error }

func (u usageError) Error() string { return u.err.Error() }
func (u usageError) Unwrap() error { return u.err }

func Run(args []string) int {
	if len(args) == 0 {
		args = []string{"run"}
	}

	root := newRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		return exitUsage
	}
	if errors.Is(err, config.ErrInvalid) {
		return exitUsage
	}
	return exitRuntime
}

type commonFlags struct {
	ConfigPath  string
	LogLevel    string
	NetTxt      string
	StateFile   string
	Location    string
	Filters     []string
	Interval    time.Duration
	MetricsAddr string
	NoWatch     bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &commonFlags{}

	root := &cobra.Command{
		Use:           "nettxt",
		Short:         "Write tracked wireless networks and clients to a plain-text report",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&c.ConfigPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&c.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	pf.StringVar(&c.StateFile, "state", "", "Tracked state file (YAML)")
	pf.StringVar(&c.Location, "location", "", "Time zone for report timestamps (e.g. UTC, Local, Europe/Paris)")
	pf.StringArrayVar(&c.Filters, "filter", nil, "Export filter expression, e.g. 'BSSID(!AA:BB:CC:DD:EE:FF)' (repeatable)")

	root.AddCommand(newRunCmd(c), newRenderCmd(c), newVersionCmd())
	return root
}

func newRunCmd(c *commonFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Rewrite the nettxt report on an interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, c)
			if err != nil {
				return err
			}
			return runDaemon(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&c.NetTxt, "nettxt", "", "Report output path (empty disables the writer)")
	f.DurationVar(&c.Interval, "interval", 0, "Flush interval (e.g. 30s)")
	f.StringVar(&c.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	f.BoolVar(&c.NoWatch, "no-watch", false, "Do not reload the state file when it changes")
	return cmd
}

func newRenderCmd(c *commonFlags) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the state file once, to stdout or --out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, c)
			if err != nil {
				return err
			}
			if cfg.StateFile == "" {
				return usageError{errors.New("render needs --state or state_file in the config")}
			}
			return renderOnce(cmd.OutOrStdout(), cfg, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the report to this path instead of stdout")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

// resolveConfig loads the config file and applies any flags the user set.
func resolveConfig(cmd *cobra.Command, c *commonFlags) (config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.LogLevel
	}
	if flags.Changed("state") {
		cfg.StateFile = c.StateFile
	}
	if flags.Changed("location") {
		cfg.Location = c.Location
	}
	if flags.Changed("filter") {
		cfg.FilterExport = c.Filters
	}
	if flags.Lookup("nettxt") != nil && flags.Changed("nettxt") {
		cfg.NetTxt = c.NetTxt
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		cfg.FlushInterval = c.Interval
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.MetricsAddr = c.MetricsAddr
	}
	if flags.Lookup("no-watch") != nil && flags.Changed("no-watch") {
		cfg.WatchState = !c.NoWatch
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logging.Setup(cfg.LogLevel)
	return cfg, nil
}

func masthead() report.Masthead {
	return report.Masthead{
		Product: version.Product,
		URL:     version.URL,
		Major:   version.Major,
		Minor:   version.Minor,
		Tiny:    version.Tiny,
	}
}

// buildSource loads the state file, if any, into a fresh table.
func buildSource(cfg config.Config, log *slog.Logger) (*tracker.Table, error) {
	table := tracker.NewTable()
	if cfg.StateFile == "" {
		return table, nil
	}
	if err := statefile.LoadInto(cfg.StateFile, table); err != nil {
		return table, err
	}
	nets, clis := table.Len()
	log.Info("loaded state file", "path", cfg.StateFile, "networks", nets, "clients", clis)
	return table, nil
}

func writerOptions(cfg config.Config, log *slog.Logger) (report.Options, error) {
	loc, err := cfg.TimeLocation()
	if err != nil {
		return report.Options{}, err
	}
	gate, err := filter.Parse(cfg.FilterExport)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		Masthead: masthead(),
		Location: loc,
		Gate:     gate,
		Logger:   log,
	}, nil
}

func renderOnce(stdout io.Writer, cfg config.Config, out string) error {
	log := slog.Default()

	table, err := buildSource(cfg, log)
	if err != nil {
		return err
	}
	opt, err := writerOptions(cfg, log)
	if err != nil {
		return err
	}

	if out == "" {
		text, _ := report.RenderText(table, report.RenderOptions{
			Masthead: opt.Masthead,
			Started:  time.Now(),
			Location: opt.Location,
			Gate:     opt.Gate,
		})
		_, err := io.WriteString(stdout, text)
		return err
	}

	w, err := report.Open(out, table, opt)
	if err != nil {
		return err
	}
	return w.Close()
}

func runDaemon(parent context.Context, cfg config.Config) error {
	log := slog.Default()

	table, err := buildSource(cfg, log)
	if err != nil {
		// The watcher may pick the file up later.
		log.Warn("state file not loaded, starting empty", "error", err)
	}

	opt, err := writerOptions(cfg, log)
	if err != nil {
		return err
	}

	w, err := report.Open(cfg.NetTxt, table, opt)
	if err != nil {
		log.Error("Failed to open nettxt log file", "path", cfg.NetTxt, "error", err)
		return err
	}
	if !w.Enabled() {
		log.Warn("no nettxt path configured, report writer disabled")
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Allow Ctrl+C to stop the run.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)
	go func() {
		select {
		case <-stop:
			log.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	if w.Enabled() {
		g.Go(func() error {
			monitor.Run(gctx, w, monitor.Options{Interval: cfg.FlushInterval}, func(ev monitor.Event) {
				if ev.Err != nil {
					log.Error("nettxt flush failed", "path", w.Path(), "error", ev.Err)
					return
				}
				log.Debug(ev.Message, "at", ev.AtUTC.Format(time.RFC3339))
			})
			return nil
		})
	}

	if cfg.StateFile != "" && cfg.WatchState {
		watcher := statefile.NewWatcher(cfg.StateFile, table, log)
		g.Go(func() error { return watcher.Run(gctx) })
	}

	if cfg.MetricsAddr != "" {
		g.Go(func() error { return serveMetrics(gctx, cfg.MetricsAddr, log) })
	}

	<-gctx.Done()
	runErr := g.Wait()
	closeErr := w.Close()
	return errors.Join(runErr, closeErr)
}

func serveMetrics(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
