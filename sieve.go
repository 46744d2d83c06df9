package sieve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/sieve/internal/config"
	"github.com/aretw0/sieve/internal/reconcile"
	"github.com/aretw0/sieve/internal/report"
	"github.com/aretw0/sieve/internal/source"
	"github.com/aretw0/sieve/pkg/schema"
	"github.com/aretw0/sieve/pkg/validate"
)

// Version is the current sieve release.
var Version = "0.2.0"

// Runner is the high-level entry point: it wires the schema, the sources,
// the validation engine and the reconciliation checks for one run.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger sets a custom structured logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithWorkers overrides the configured validation parallelism.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.cfg.Workers = n
		}
	}
}

// New loads the run configuration and prepares a Runner.
// Configuration problems are returned here, before any data is touched.
func New(configPath string, opts ...Option) (*Runner, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Result is the outcome of one validation run.
type Result struct {
	// Findings is the ordered list of data-quality findings: per-cell
	// violations in row-major order followed by whole-source aggregate
	// mismatches.
	Findings []validate.Finding

	// ReportPath is where the report was written, or empty when the run
	// was clean and no file was produced.
	ReportPath string
}

// Clean reports whether the run produced no findings.
func (r *Result) Clean() bool { return len(r.Findings) == 0 }

// Run validates the primary source against the schema, cross-checks the
// secondary source when configured, and writes the report. Errors are
// configuration or I/O defects; data-quality problems come back as findings
// inside a nil-error Result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	s, err := schema.Load(r.cfg.SchemaFile)
	if err != nil {
		return nil, err
	}

	primary, err := source.ReadCSV(r.cfg.CSVFile)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("primary source loaded",
		"file", r.cfg.CSVFile,
		"rows", primary.NumRows(),
		"columns", len(primary.Columns()))

	engine := validate.New(s,
		validate.WithWorkers(r.cfg.Workers),
		validate.WithLogger(r.logger),
	)
	findings, err := engine.Run(ctx, primary)
	if err != nil {
		return nil, err
	}

	if r.cfg.Reconcile != nil {
		secondary, err := source.ReadParquet(ctx, r.cfg.ParquetFile)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("secondary source loaded",
			"file", r.cfg.ParquetFile,
			"rows", secondary.NumRows())

		rc := reconcile.Config{
			SumColumn:   r.cfg.Reconcile.SumColumn,
			CountColumn: r.cfg.Reconcile.CountColumn,
			JoinColumns: r.cfg.Reconcile.JoinColumns,
		}
		if f := r.cfg.Reconcile.Filter; f != nil {
			rc.Filter = &reconcile.Filter{Column: f.Column, Min: f.Min, Max: f.Max}
		}
		extra, err := reconcile.Run(r.logger, primary, secondary, rc)
		if err != nil {
			return nil, err
		}
		findings = append(findings, extra...)
	}

	res := &Result{Findings: findings}
	if len(findings) > 0 {
		if err := report.Write(r.cfg.ReportFile, findings); err != nil {
			return nil, fmt.Errorf("report %s: %w", r.cfg.ReportFile, err)
		}
		res.ReportPath = r.cfg.ReportFile
		r.logger.Info("report generated", "file", r.cfg.ReportFile, "findings", len(findings))
	} else {
		r.logger.Info("no errors found")
	}
	return res, nil
}
