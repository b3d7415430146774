package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"revealboard/internal/graph"
)

var (
	analyzeJSON         bool
	analyzeRegion       string
	analyzeTopN         int
	analyzeHubThreshold int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Lint the board: topology, dependency loops, unreachable cards, health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		snap, err := graph.SnapshotFromDB(db)
		if err != nil {
			return fmt.Errorf("loading board: %w", err)
		}

		if analyzeRegion != "" {
			loc, ok := snap.Cards[analyzeRegion]
			if !ok || loc.Kind != "location" {
				return fmt.Errorf("--region must name a location card, got %q", analyzeRegion)
			}
			snap = snap.FilterToRegion(analyzeRegion)
		}

		config := &graph.AnalyzerConfig{
			HubThreshold: analyzeHubThreshold,
			TopN:         analyzeTopN,
		}

		report := graph.Analyze(snap, config)

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printHumanReadable(report, snap)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output as JSON")
	analyzeCmd.Flags().StringVar(&analyzeRegion, "region", "", "Scope analysis to a location card and the cards it hides")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top-n", 10, "Number of top items to show per section")
	analyzeCmd.Flags().IntVar(&analyzeHubThreshold, "hub-threshold", 4, "Minimum degree to consider a card a hub")
	rootCmd.AddCommand(analyzeCmd)
}

func printHumanReadable(report *graph.AnalysisReport, snap *graph.BoardSnapshot) {
	// Health bar
	barLen := int(report.HealthScore * 20)
	if barLen > 20 {
		barLen = 20
	}
	bar := strings.Repeat("█", barLen) + strings.Repeat("░", 20-barLen)
	fmt.Printf("\n  Board Health: %.0f%%  [%s]\n", report.HealthScore*100, bar)
	fmt.Printf("  breakdown: connectivity=%.2f components=%.2f acyclicity=%.2f reachability=%.2f\n\n",
		report.HealthBreakdown.Connectivity,
		report.HealthBreakdown.Components,
		report.HealthBreakdown.Acyclicity,
		report.HealthBreakdown.Reachability)

	// Topology
	t := report.Topology
	fmt.Println("  TOPOLOGY")
	fmt.Println("  ────────────────────────────────────────")
	fmt.Printf("  Cards: %d (%d locations, %d budgeted)  Deps: %d  Components: %d\n",
		t.TotalCards, t.Locations, t.BudgetedCards, t.TotalDeps, t.NumComponents)
	fmt.Printf("  hide=%d open=%d activator=%d\n", t.DepsByType["hide"], t.DepsByType["open"], t.DepsByType["activator"])
	fmt.Printf("  Largest component: %d  Smallest: %d\n", t.LargestComponent, t.SmallestComponent)

	if t.OrphanCount > 0 {
		fmt.Printf("  Orphans: %d cards with no deps\n", t.OrphanCount)
		printCardList(snap, t.OrphanIDs, 5, t.OrphanCount)
	}

	// Degree distribution
	fmt.Println("\n  Degree distribution:")
	for _, b := range t.DegreeHistogram {
		if b.Count > 0 {
			barWidth := int(math.Log2(float64(b.Count))) + 2
			fmt.Printf("    %5s: %4d  %s\n", b.Label, b.Count, strings.Repeat("=", barWidth))
		}
	}

	// Hubs
	if len(t.Hubs) > 0 {
		fmt.Println("\n  Top hubs (degree > threshold):")
		for _, hub := range t.Hubs {
			fmt.Printf("    %s degree=%d (in=%d, out=%d)  %s\n",
				truncID(hub.ID), hub.Degree, hub.InDegree, hub.OutDegree, truncTitle(hub.Title, 40))
		}
	}

	// Loops
	c := report.Cycles
	if c.CycleCount > 0 {
		fmt.Println("\n  DEPENDENCY LOOPS")
		fmt.Println("  ────────────────────────────────────────")
		for _, loop := range c.OpenCycles {
			fmt.Printf("    open: %s\n", strings.Join(loop, " -> "))
		}
		for _, loop := range c.HideCycles {
			fmt.Printf("    hide: %s\n", strings.Join(loop, " -> "))
		}
	}

	// Reachability
	r := report.Reachability
	if r.StrandedCount > 0 || r.DeadGatedCount > 0 {
		fmt.Println("\n  UNREACHABLE CARDS")
		fmt.Println("  ────────────────────────────────────────")
		if r.StrandedCount > 0 {
			fmt.Printf("  %d hidden cards nothing reveals:\n", r.StrandedCount)
			printCardList(snap, r.StrandedIDs, 10, r.StrandedCount)
		}
		if r.DeadGatedCount > 0 {
			fmt.Printf("  %d cards gated by an activator that never opens:\n", r.DeadGatedCount)
			printCardList(snap, r.DeadGatedIDs, 10, r.DeadGatedCount)
		}
	}

	fmt.Println()
}

func printCardList(snap *graph.BoardSnapshot, ids []string, limit, total int) {
	if len(ids) < limit {
		limit = len(ids)
	}
	for _, id := range ids[:limit] {
		title := "?"
		if c := snap.Cards[id]; c != nil {
			title = truncTitle(c.Title, 50)
		}
		fmt.Printf("    - %s (%s)\n", truncID(id), title)
	}
	if total > limit {
		fmt.Printf("    ... and %d more\n", total-limit)
	}
}

func truncID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func truncTitle(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Find a safe UTF-8 boundary
	truncated := s[:max]
	for len(truncated) > 0 && truncated[len(truncated)-1]>>6 == 2 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "..."
}
