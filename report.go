package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nstehr/colinatole/config"
	"github.com/nstehr/colinatole/turnlog"
)

var slowMs float64

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <turns.jsonl.zst>",
		Short: "Print a recorded match as a per-turn table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := turnlog.ReadFile(args[0])
			if err != nil {
				color.Red("Error reading turn log: %v", err)
				return err
			}
			return renderReport(os.Stdout, recs, slowMs)
		},
	}
	def := config.Default().Agent
	cmd.Flags().Float64Var(&slowMs, "slow-ms", float64(def.TurnBudgetMs)*def.BudgetWarnRatio, "Flag turns slower than this many milliseconds")
	return cmd
}

// matchSummary aggregates a recorded match.
type matchSummary struct {
	turns     int
	finalBank int
	peakShips int
	builds    int
	spawns    int
	slow      int
	events    map[string]int
}

func summarize(recs []turnlog.TurnRecord, slowMs float64) matchSummary {
	s := matchSummary{events: make(map[string]int)}
	for _, r := range recs {
		s.turns++
		s.finalBank = r.Bank
		s.peakShips = max(s.peakShips, r.Ships)
		s.builds += r.Builds
		if r.Spawned {
			s.spawns++
		}
		if slowMs > 0 && r.ElapsedMs > slowMs {
			s.slow++
		}
		for _, e := range r.Events {
			s.events[e]++
		}
	}
	return s
}

func renderReport(w io.Writer, recs []turnlog.TurnRecord, slowMs float64) error {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	warnColor := color.New(color.FgYellow)

	if len(recs) == 0 {
		warnColor.Fprintln(w, "No turns recorded.")
		return nil
	}

	titleColor.Fprintf(w, "Match report: %d turns\n\n", len(recs))

	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Turn", "Bank", "Ships", "Returning", "Moves", "Stays", "Builds", "Spawned", "Elapsed", "Events"}),
	)
	for _, r := range recs {
		spawned := ""
		if r.Spawned {
			spawned = "yes"
		} else if r.SpawnBlockedBy != "" {
			spawned = "no (" + r.SpawnBlockedBy + ")"
		}
		elapsed := fmt.Sprintf("%.2fms", r.ElapsedMs)
		if slowMs > 0 && r.ElapsedMs > slowMs {
			elapsed += " !"
		}
		row := []string{
			strconv.Itoa(r.Turn),
			strconv.Itoa(r.Bank),
			strconv.Itoa(r.Ships),
			strconv.Itoa(r.Returning),
			strconv.Itoa(r.Moves),
			strconv.Itoa(r.Stays),
			strconv.Itoa(r.Builds),
			spawned,
			elapsed,
			strings.Join(r.Events, ", "),
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	s := summarize(recs, slowMs)
	fmt.Fprintln(w)
	successColor.Fprintf(w, "Final bank %d, peak fleet %d ships, %d spawns, %d dropoffs\n",
		s.finalBank, s.peakShips, s.spawns, s.builds)
	if s.slow > 0 {
		warnColor.Fprintf(w, "%d turns exceeded %.0fms\n", s.slow, slowMs)
	}
	if n := s.events["ships_lost"]; n > 0 {
		color.New(color.FgRed).Fprintf(w, "Ships lost on %d turns\n", n)
	}
	return nil
}
