package graph

import (
	"revealboard/internal/board"
	"revealboard/internal/db"
)

// SnapshotFromDB loads a BoardSnapshot from the database
func SnapshotFromDB(d *db.DB) (*BoardSnapshot, error) {
	dbCards, err := d.AllCards()
	if err != nil {
		return nil, err
	}
	dbDeps, err := d.AllDeps()
	if err != nil {
		return nil, err
	}

	cards := make([]*CardInfo, 0, len(dbCards))
	for _, c := range dbCards {
		cards = append(cards, &CardInfo{
			ID:            c.ID,
			Title:         c.Title,
			Kind:          c.Kind,
			Hidden:        c.Interaction == "hidden",
			Reserve:       c.Reserve,
			CostsBudget:   c.CostsBudget,
			InitiallyOpen: c.InitiallyOpen,
		})
	}

	deps := make([]DepInfo, 0, len(dbDeps))
	for _, e := range dbDeps {
		deps = append(deps, DepInfo{Source: e.SourceID, Target: e.TargetID, Type: e.Type})
	}

	return NewSnapshot(cards, deps), nil
}

// SnapshotFromDeclaration builds a BoardSnapshot from an in-memory declaration
func SnapshotFromDeclaration(decl *board.Declaration) *BoardSnapshot {
	cards := make([]*CardInfo, 0, len(decl.Cards))
	for _, c := range decl.Cards {
		cards = append(cards, &CardInfo{
			ID:            c.Key,
			Title:         c.Title,
			Kind:          c.Kind.String(),
			Hidden:        c.Interaction == board.Hidden,
			Reserve:       c.Reserve,
			CostsBudget:   c.CostsBudget,
			InitiallyOpen: c.InitiallyOpen,
		})
	}
	deps := make([]DepInfo, 0, len(decl.Deps))
	for _, e := range decl.Deps {
		deps = append(deps, DepInfo{Source: e.Source, Target: e.Target, Type: string(e.Type)})
	}
	return NewSnapshot(cards, deps)
}
