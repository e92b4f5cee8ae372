package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtside/go-court-stats/internal/aggregator"
	"github.com/courtside/go-court-stats/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show match statistics by ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
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

	report.PrintMatchHeader(os.Stdout, m)
	report.PrintTeamTable(os.Stdout, m, stats)
	fmt.Fprintln(os.Stdout)
	report.PrintPlayerServeTable(os.Stdout, m, stats)
	fmt.Fprintln(os.Stdout)
	report.PrintPlayerReturnTable(os.Stdout, m, stats)
	fmt.Fprintln(os.Stdout)
	report.PrintShotBreakdown(os.Stdout, m, stats)
	return nil
}
