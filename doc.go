/*
Package sieve validates tabular records against a declarative column schema
and cross-checks aggregates between two tabular sources.

A schema is an ordered list of column specs, each naming a column, a declared
type (string, integer, float, boolean, datetime, array, object) and an
optional constraint set (required, length and value bounds, allowed values,
prefix regex, datetime format, float precision). The engine walks every row
of the primary source against every schema column and collects structured
findings in a deterministic order; one bad cell never stops the run.

When a secondary source is configured, sieve also compares filtered sums and
counts of a column between the two sources and can anti-join them over key
columns; divergences are reported as whole-source findings alongside the
per-cell ones.

# Usage

	runner, err := sieve.New("config.yaml", sieve.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	res, err := runner.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	if !res.Clean() {
		fmt.Println("report written to", res.ReportPath)
	}

Configuration and I/O failures surface as errors; data-quality problems are
findings in the Result, written line by line to the report file.
*/
package sieve
