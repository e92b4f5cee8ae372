package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/courtside/go-court-stats/internal/aggregator"
	"github.com/courtside/go-court-stats/internal/model"
	"github.com/courtside/go-court-stats/internal/report"
	"github.com/courtside/go-court-stats/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive scoring session",
	Long:  "Open a persistent session against the database. Select a match with 'use', then record points without re-typing its ID. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cGreeting.Println("courtstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	var current *model.Match
	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("courtstats")
		if current != nil {
			cMuted.Printf("[%s]", current.ID[:8])
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			shellList(db)
		case "use":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: use <id-prefix>")
				continue
			}
			if m := shellLoad(db, args[0]); m != nil {
				current = m
				fmt.Printf("Scoring %q (%s)\n", current.Title, current.Roster.Mode)
			}
		case "show":
			if current == nil {
				cWarn.Fprintln(os.Stderr, "no match selected — run 'use <id-prefix>' first")
				continue
			}
			stats := aggregator.Aggregate(current)
			report.PrintMatchHeader(os.Stdout, current)
			report.PrintTeamTable(os.Stdout, current, stats)
			report.PrintPlayerServeTable(os.Stdout, current, stats)
		case "log":
			if current == nil {
				cWarn.Fprintln(os.Stderr, "no match selected — run 'use <id-prefix>' first")
				continue
			}
			report.PrintGameLog(os.Stdout, current)
		case "point":
			if current == nil {
				cWarn.Fprintln(os.Stderr, "no match selected — run 'use <id-prefix>' first")
				continue
			}
			shellPoint(db, current, args)
		case "fault":
			if current == nil {
				cWarn.Fprintln(os.Stderr, "no match selected — run 'use <id-prefix>' first")
				continue
			}
			shellFault(db, current, args)
		case "addgame":
			if current == nil {
				cWarn.Fprintln(os.Stderr, "no match selected — run 'use <id-prefix>' first")
				continue
			}
			current.AddGame()
			if shellSave(db, current) {
				fmt.Printf("Game %d added\n", len(current.Games))
			}
		case "addtiebreak":
			if current == nil {
				cWarn.Fprintln(os.Stderr, "no match selected — run 'use <id-prefix>' first")
				continue
			}
			current.AddTieBreak()
			if shellSave(db, current) {
				fmt.Printf("Tie-break %d added\n", len(current.TieBreaks))
			}
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q — type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"use <id-prefix>", "select a match for scoring"},
		{"show", "stats for the selected match"},
		{"log", "point log for the selected match"},
		{"point <game> <box> <A|B> <code> [actor] [returner]", "record a point"},
		{"fault <game> <box>", "toggle the first-serve fault flag"},
		{"addgame", "append a game to the sheet"},
		{"addtiebreak", "append a tie-break to the sheet"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-52s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellList(db *storage.DB) {
	sums, err := db.ListMatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(sums) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	for _, s := range sums {
		fmt.Fprintf(os.Stdout, "%-10s  %-24s  %-8s  %s\n",
			s.ID[:8], s.Title, s.Mode, s.CreatedAt.Format("2006-01-02"))
	}
}

func shellLoad(db *storage.DB, prefix string) *model.Match {
	m, err := loadByPrefix(db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return nil
	}
	return m
}

func shellSave(db *storage.DB, m *model.Match) bool {
	if err := db.SaveMatch(m); err != nil {
		cError.Fprintf(os.Stderr, "save: %v\n", err)
		return false
	}
	return true
}

// shellPoint records a point from positional arguments:
// point <game#> <box#> <A|B> <code> [actor] [returner]
func shellPoint(db *storage.DB, m *model.Match, args []string) {
	if len(args) < 4 {
		cError.Fprintln(os.Stderr, "usage: point <game> <box> <A|B> <code> [actor] [returner]")
		return
	}
	gameNo, err1 := strconv.Atoi(args[0])
	boxNo, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		cError.Fprintln(os.Stderr, "game and box must be numbers")
		return
	}
	team := model.ParseTeam(args[2])
	if team == model.TeamNone {
		cError.Fprintf(os.Stderr, "unknown team %q (use A or B)\n", args[2])
		return
	}
	g, err := gameAt(m, gameNo)
	if err != nil {
		cError.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	if boxNo < 1 || boxNo > g.TotalBoxes {
		cError.Fprintf(os.Stderr, "box %d out of range (game has %d)\n", boxNo, g.TotalBoxes)
		return
	}
	code := args[3]
	var actor, returner string
	if len(args) > 4 {
		actor = args[4]
	}
	if len(args) > 5 {
		returner = args[5]
	}
	g.SetPoint(boxNo-1, team, code, actor, returner)
	if shellSave(db, m) {
		fmt.Printf("Recorded %s for %s in game %d box %d\n", code, team, gameNo, boxNo)
	}
}

func shellFault(db *storage.DB, m *model.Match, args []string) {
	if len(args) != 2 {
		cError.Fprintln(os.Stderr, "usage: fault <game> <box>")
		return
	}
	gameNo, err1 := strconv.Atoi(args[0])
	boxNo, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		cError.Fprintln(os.Stderr, "game and box must be numbers")
		return
	}
	g, err := gameAt(m, gameNo)
	if err != nil {
		cError.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	if boxNo < 1 || boxNo > g.TotalBoxes {
		cError.Fprintf(os.Stderr, "box %d out of range (game has %d)\n", boxNo, g.TotalBoxes)
		return
	}
	g.ToggleServiceInfo(boxNo - 1)
	if shellSave(db, m) {
		state := "first serve in"
		if g.ServiceInfo[boxNo-1] {
			state = "first serve faulted"
		}
		fmt.Printf("Game %d box %d: %s\n", gameNo, boxNo, state)
	}
}
