package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"revealboard/internal/board"
	"revealboard/internal/db"
	"revealboard/internal/transition"
)

var (
	initForce bool
	initEmpty bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a " + dbFileName + " seeded with the demo board",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		path := filepath.Join(dir, dbFileName)
		if dbPath != "" {
			path = dbPath
		}

		if _, err := os.Stat(path); err == nil {
			if !initForce {
				return fmt.Errorf("%s already exists (use --force to replace it)", path)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("removing old board: %w", err)
			}
		}

		d, err := db.OpenDB(path)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.Migrate(); err != nil {
			return err
		}

		if initEmpty {
			fmt.Printf("Created empty board at %s\n", path)
			return nil
		}
		decl := demoDeclaration()
		if err := board.Save(d, decl); err != nil {
			return fmt.Errorf("saving demo board: %w", err)
		}
		fmt.Printf("Created %q at %s: %d cards, %d deps, budget %d\n",
			decl.Title, path, len(decl.Cards), len(decl.Deps), decl.Budget)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing database")
	initCmd.Flags().BoolVar(&initEmpty, "empty", false, "Create the schema without the demo board")
	rootCmd.AddCommand(initCmd)
}

func at(x, y float64) transition.Vec3 { return transition.Vec3{X: x, Y: y} }

// demoDeclaration is a small investigation board: two rooms whose contents
// are hidden until the room card is turned, with a locked safe and spare
// leads that appear once the reveal budget runs out.
func demoDeclaration() *board.Declaration {
	return &board.Declaration{
		Title:  "The Study",
		Budget: 4,
		Cards: []board.CardDecl{
			{Key: "brief", Title: "Case brief", Position: at(-14, 6), InitiallyOpen: true},
			{Key: "study", Title: "The study", Kind: board.KindLocation, Position: at(-8, 0),
				ZoomOffset: at(2, -2), ZoomSize: 9},
			{Key: "desk", Title: "Writing desk", Position: at(-10, -3), CostsBudget: true},
			{Key: "drawer", Title: "Locked drawer", Position: at(-6, -3), CostsBudget: true},
			{Key: "letter", Title: "Torn letter", Position: at(-6, -8), SpecialRotation: true},
			{Key: "hall", Title: "The hall", Kind: board.KindLocation, Position: at(6, 0),
				ZoomOffset: at(2, -2), ZoomSize: 9},
			{Key: "clock", Title: "Grandfather clock", Position: at(4, -3), CostsBudget: true},
			{Key: "safe", Title: "Wall safe", Position: at(8, -3), CostsBudget: true},
			{Key: "key", Title: "Brass key", Position: at(8, -8)},
			{Key: "gardener", Title: "The gardener", Position: at(14, 6), Interaction: board.Hidden,
				Reserve: true},
		},
		Deps: []board.DepDecl{
			{Source: "study", Target: "desk", Type: board.DepHide},
			{Source: "study", Target: "drawer", Type: board.DepHide},
			{Source: "drawer", Target: "letter", Type: board.DepHide},
			{Source: "hall", Target: "clock", Type: board.DepHide},
			{Source: "hall", Target: "safe", Type: board.DepHide},
			{Source: "clock", Target: "key", Type: board.DepOpen},
			{Source: "key", Target: "drawer", Type: board.DepActivator},
			{Source: "desk", Target: "safe", Type: board.DepActivator},
		},
	}
}
