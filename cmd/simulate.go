package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"revealboard/internal/board"
	"revealboard/internal/session"
	"revealboard/internal/viewport"
)

var (
	simFrame    time.Duration
	simSettle   time.Duration
	simSessions int
	simWidth    float64
	simHeight   float64
	simEvents   bool
)

// simResult is one session's outcome
type simResult struct {
	Snapshot session.Snapshot `json:"snapshot"`
	Settled  bool             `json:"settled"`
	Events   []board.Event    `json:"events,omitempty"`
	Error    string           `json:"error,omitempty"`
}

var simulateCmd = &cobra.Command{
	Use:   "simulate <script>",
	Short: "Replay an input script against the stored board and print the final state as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if simSessions < 1 {
			return fmt.Errorf("--sessions must be >= 1")
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		steps, err := session.ParseScript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		cfg, decl, err := loadBoard()
		if err != nil {
			return err
		}

		logger := newLogger("simulate")
		pool := session.NewPool(cfg, decl, func() viewport.Camera {
			return fitCamera(decl, simWidth, simHeight, 1)
		}, session.WithLogger(newLogger("session")))

		ids := make([]string, simSessions)
		for i := range ids {
			if ids[i], err = pool.Create(); err != nil {
				return err
			}
		}

		results := make([]simResult, len(ids))
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				results[i] = simulateOne(pool, id, steps)
				logger.Printf("session %s done (settled=%v)", id, results[i].Settled)
			}(i, id)
		}
		wg.Wait()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			if results[0].Error != "" {
				return fmt.Errorf("%s: %s", args[0], results[0].Error)
			}
			return enc.Encode(results[0])
		}
		return enc.Encode(results)
	},
}

func simulateOne(pool *session.Pool, id string, steps []session.Step) simResult {
	var res simResult
	err := pool.With(id, func(s *session.Session) error {
		if simEvents {
			s.Subscribe(func(ev board.Event) { res.Events = append(res.Events, ev) })
		}
		if err := s.Run(steps, simFrame); err != nil {
			return err
		}
		res.Settled = s.Settle(simFrame, simSettle)
		res.Snapshot = s.Snapshot()
		return nil
	})
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func init() {
	simulateCmd.Flags().DurationVar(&simFrame, "frame", 16*time.Millisecond, "Simulated frame duration")
	simulateCmd.Flags().DurationVar(&simSettle, "settle", 5*time.Second, "Keep ticking after the script until idle, at most this long")
	simulateCmd.Flags().IntVar(&simSessions, "sessions", 1, "Number of independent sessions to run the script in")
	simulateCmd.Flags().Float64Var(&simWidth, "width", 800, "Screen width for pointer coordinates")
	simulateCmd.Flags().Float64Var(&simHeight, "height", 600, "Screen height for pointer coordinates")
	simulateCmd.Flags().BoolVar(&simEvents, "events", false, "Include opened/closed notifications in the output")
	rootCmd.AddCommand(simulateCmd)
}
