// Package app implements the application layer for morph.
package app

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/morph/internal/adapters/config"  //nolint:depguard // Settings are resolved by the config adapter
	"go.trai.ch/morph/internal/adapters/invoker" //nolint:depguard // Metrics endpoint lives with the executor
	"go.trai.ch/morph/internal/core/domain"
	"go.trai.ch/morph/internal/core/ports"
	"go.trai.ch/morph/internal/engine/scheduler"
	"go.trai.ch/morph/internal/engine/transform"
	"go.trai.ch/zerr"
)

// RunOptions configures a single invocation. Zero values fall back to the settings.
type RunOptions struct {
	// ConfigPath is the pipeline file to load instead of searching for morph.yaml.
	ConfigPath string
	// Parallelism bounds the number of artifacts resolved concurrently.
	Parallelism int
	// JSONLogs switches the logger to JSON output.
	JSONLogs bool
	// MetricsAddr serves Prometheus metrics on this address while running.
	MetricsAddr string
}

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enabled bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	planner      *scheduler.Planner
	scheduler    *scheduler.Scheduler
	logger       ports.Logger
	telemetry    ports.Telemetry
	settings     *config.Settings
	gatherer     prometheus.Gatherer
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	planner *scheduler.Planner,
	sched *scheduler.Scheduler,
	logger ports.Logger,
	telemetry ports.Telemetry,
	settings *config.Settings,
	gatherer prometheus.Gatherer,
) *App {
	return &App{
		configLoader: loader,
		planner:      planner,
		scheduler:    sched,
		logger:       logger,
		telemetry:    telemetry,
		settings:     settings,
		gatherer:     gatherer,
		out:          os.Stdout,
	}
}

// WithOutput sets the writer results are printed to.
func WithOutput(w io.Writer) func(*App) {
	return func(a *App) {
		a.out = w
	}
}

// Run resolves the targets and prints the files of every resolved artifact.
// It returns domain.ErrResolutionFailed when any artifact failed.
func (a *App) Run(ctx context.Context, targets []string, opts RunOptions) error {
	a.configureLogger(opts)
	defer func() {
		if err := a.telemetry.Close(); err != nil {
			a.logger.Error(err)
		}
	}()

	pipeline, err := a.loadPipeline(opts)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if addr := a.metricsAddr(opts); addr != "" {
		metricsCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := invoker.ServeMetrics(metricsCtx, addr, a.gatherer); err != nil {
				a.logger.Error(err)
			}
		}()
	}

	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = a.settings.Parallelism
	}

	results, err := a.scheduler.Run(ctx, pipeline, targets, parallelism)
	if err != nil {
		return zerr.Wrap(err, "artifact resolution aborted")
	}

	failed := 0
	for _, name := range slices.Sorted(maps.Keys(results)) {
		subject := results[name]
		if subject.IsFailed() {
			failed++
			a.logger.Error(zerr.With(zerr.Wrap(subject.Failure(), ""), "artifact", name))
			continue
		}
		_, _ = fmt.Fprintf(a.out, "%s (%s)\n", name, a.scheduler.Status(name))
		for _, file := range subject.Files() {
			_, _ = fmt.Fprintf(a.out, "  %s\n", a.relative(pipeline, file))
		}
	}

	if failed > 0 {
		return domain.ErrResolutionFailed
	}
	return nil
}

// Plan prints the steps of every selected artifact without running any transformer.
func (a *App) Plan(_ context.Context, targets []string, opts RunOptions) error {
	a.configureLogger(opts)

	pipeline, err := a.loadPipeline(opts)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	plan, err := a.planner.Plan(pipeline, targets)
	if err != nil {
		return zerr.Wrap(err, "failed to plan artifacts")
	}

	for _, entry := range plan.Entries {
		_, _ = fmt.Fprintf(a.out, "%s\n", describe(entry))
		if entry.Transformation == nil {
			continue
		}
		i := 0
		entry.Transformation.VisitSteps(func(step *transform.Step) {
			i++
			_, _ = fmt.Fprintf(a.out, "  %d. %s\n", i, step)
		})
	}
	return nil
}

func describe(entry scheduler.Entry) string {
	var tags []string
	switch {
	case entry.Transformation == nil:
		tags = append(tags, "no transformation")
	case entry.UpToDate:
		tags = append(tags, "up to date")
	default:
		tags = append(tags, "needs work")
	}
	if entry.RequiresDependencies() {
		tags = append(tags, "requires dependencies")
	}
	return fmt.Sprintf("%s [%s]", entry.Artifact.Name, strings.Join(tags, ", "))
}

func (a *App) configureLogger(opts RunOptions) {
	if !opts.JSONLogs && a.settings.LogFormat != config.LogFormatJSON {
		return
	}
	if l, ok := a.logger.(jsonSwitcher); ok {
		l.SetJSON(true)
	}
}

func (a *App) metricsAddr(opts RunOptions) string {
	if opts.MetricsAddr != "" {
		return opts.MetricsAddr
	}
	return a.settings.MetricsAddr
}

func (a *App) loadPipeline(opts RunOptions) (*domain.Pipeline, error) {
	if opts.ConfigPath != "" {
		path, err := filepath.Abs(opts.ConfigPath)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", opts.ConfigPath)
		}
		return a.configLoader.LoadFile(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	return a.configLoader.Load(cwd)
}

// relative shortens file to a path below the pipeline root when possible.
func (a *App) relative(pipeline *domain.Pipeline, file string) string {
	if rel, err := filepath.Rel(pipeline.Graph.Root(), file); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return file
}
