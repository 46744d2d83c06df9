package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/sieve"
	"github.com/aretw0/sieve/internal/logging"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configured data files and write the report",
	Long: `Loads the schema and data files named in the configuration, validates
every row, runs the configured reconciliation checks, and writes all findings
to the report file. Exits non-zero when findings were produced.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		levelName, _ := cmd.Flags().GetString("log-level")
		workers, _ := cmd.Flags().GetInt("workers")

		level, err := logging.ParseLevel(levelName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(level)

		runner, err := sieve.New(configPath,
			sieve.WithLogger(logger),
			sieve.WithWorkers(workers),
		)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		res, err := runner.Run(context.Background())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		if res.Clean() {
			fmt.Println("No errors found")
			return
		}
		fmt.Printf("Found %d problems, report written to %s\n", len(res.Findings), res.ReportPath)
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Int("workers", 0, "Validate rows with this many workers (0 = sequential)")

	// Make 'check' the default when no subcommand is given.
	rootCmd.Run = checkCmd.Run
	rootCmd.Flags().Int("workers", 0, "Validate rows with this many workers (0 = sequential)")
}
