package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtside/go-court-stats/internal/aggregator"
	"github.com/courtside/go-court-stats/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <id-prefix>",
	Short: "Write the full match report to a file or stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := loadByPrefix(db, args[0])
	if err != nil || m == nil {
		return err
	}

	stats := aggregator.Aggregate(m)

	w := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	report.WriteMatchReport(w, m, stats, time.Now())
	if exportOut != "" {
		fmt.Fprintf(os.Stdout, "Report written to %s\n", exportOut)
	}
	return nil
}
