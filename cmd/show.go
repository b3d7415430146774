package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"revealboard/internal/board"
	"revealboard/internal/db"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <card>",
	Short: "Show a stored card and the deps touching it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		card, err := resolveStoredCard(d, args[0])
		if err != nil {
			return err
		}
		deps, err := d.GetDepsForCard(card.ID)
		if err != nil {
			return fmt.Errorf("loading deps: %w", err)
		}

		if showJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Card *db.Card `json:"card"`
				Deps []db.Dep `json:"deps"`
			}{card, deps})
		}

		fmt.Printf("%s  %s (%s)\n", card.ID, card.Title, card.Kind)
		fmt.Printf("  position: (%.1f, %.1f, %.1f)  interaction: %s\n", card.PosX, card.PosY, card.PosZ, card.Interaction)
		fmt.Printf("  costs budget: %v  initially open: %v  reserve: %v\n", card.CostsBudget, card.InitiallyOpen, card.Reserve)
		for _, e := range deps {
			if e.SourceID == card.ID {
				fmt.Printf("  %-9s -> %s\n", e.Type, e.TargetID)
			} else {
				fmt.Printf("  %-9s <- %s\n", e.Type, e.SourceID)
			}
		}
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <card>",
	Short: "Remove a stored card and its deps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := OpenDatabase()
		if err != nil {
			return err
		}
		defer d.Close()

		card, err := resolveStoredCard(d, args[0])
		if err != nil {
			return err
		}
		if err := d.DeleteCard(card.ID); err != nil {
			return fmt.Errorf("removing %s: %w", card.ID, err)
		}
		fmt.Printf("Removed %s (%s)\n", card.ID, card.Title)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rmCmd)
}

func resolveStoredCard(d *db.DB, reference string) (*db.Card, error) {
	decl, err := board.FromDB(d)
	if err != nil {
		return nil, fmt.Errorf("loading board: %w", err)
	}
	ref, err := ResolveCard(decl, reference)
	if err != nil {
		return nil, err
	}
	card, err := d.GetCard(ref.Key)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("card not found: %s", ref.Key)
	}
	return card, nil
}
