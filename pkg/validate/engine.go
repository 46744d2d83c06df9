package validate

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/sieve/pkg/schema"
	"github.com/aretw0/sieve/pkg/table"
)

// Engine walks every row of a table against a schema and collects findings
// in a deterministic order: row-major, then schema declaration order, then
// required-rule before type-rule. Nothing is deduplicated and no row is ever
// skipped because an earlier one failed.
type Engine struct {
	schema  schema.Schema
	workers int
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers enables bounded-parallel row validation. Each cell check is
// pure, so rows can be validated independently; per-row results are joined
// back in row order, keeping output byte-identical to the sequential walk.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 1 {
			e.workers = n
		}
	}
}

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine for the given schema.
func New(s schema.Schema, opts ...Option) *Engine {
	e := &Engine{
		schema:  s,
		workers: 1,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run evaluates every row against every schema column and returns the
// ordered finding list. The only error condition is a configuration defect
// (a column type outside the enum); data-quality problems are findings, not
// errors.
func (e *Engine) Run(ctx context.Context, tbl *table.Table) ([]Finding, error) {
	rows := tbl.NumRows()

	var perRow [][]Finding
	var err error
	if e.workers > 1 {
		perRow, err = e.runParallel(ctx, tbl, rows)
	} else {
		perRow, err = e.runSequential(ctx, tbl, rows)
	}
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for _, fs := range perRow {
		findings = append(findings, fs...)
	}
	e.logger.Debug("validation walk done",
		"rows", rows,
		"columns", len(e.schema),
		"findings", len(findings))
	return findings, nil
}

func (e *Engine) runSequential(ctx context.Context, tbl *table.Table, rows int) ([][]Finding, error) {
	perRow := make([][]Finding, rows)
	for i := 0; i < rows; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fs, err := e.checkRow(tbl, i)
		if err != nil {
			return nil, err
		}
		perRow[i] = fs
	}
	return perRow, nil
}

func (e *Engine) runParallel(ctx context.Context, tbl *table.Table, rows int) ([][]Finding, error) {
	perRow := make([][]Finding, rows)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < rows; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fs, err := e.checkRow(tbl, i)
			if err != nil {
				return err
			}
			perRow[i] = fs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return perRow, nil
}

// checkRow applies the required rule and the type rule to every schema
// column of one row. The rules are independent: a required violation does
// not suppress the type check, and the type check is skipped only when the
// cell is empty.
func (e *Engine) checkRow(tbl *table.Table, row int) ([]Finding, error) {
	var out []Finding
	for _, col := range e.schema {
		raw := tbl.Cell(row, col.Name)

		if col.Options.Required && raw == "" {
			out = append(out, Finding{
				Row:     row,
				Column:  col.Name,
				Message: fmt.Sprintf("Required column %s is empty", col.Name),
			})
		}

		if raw == "" {
			continue
		}
		ok, err := Check(col.Type, raw, col.Options)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		if !ok {
			out = append(out, Finding{
				Row:     row,
				Column:  col.Name,
				Message: fmt.Sprintf("Invalid value %s for column %s", raw, col.Name),
			})
		}
	}
	return out, nil
}
