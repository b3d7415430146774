package board

import (
	"fmt"

	"revealboard/internal/db"
	"revealboard/internal/transition"
)

// FromDB loads a board declaration from the database
func FromDB(d *db.DB) (*Declaration, error) {
	dbCards, err := d.AllCards()
	if err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}
	dbDeps, err := d.AllDeps()
	if err != nil {
		return nil, fmt.Errorf("loading deps: %w", err)
	}

	decl := &Declaration{
		Cards: make([]CardDecl, 0, len(dbCards)),
		Deps:  make([]DepDecl, 0, len(dbDeps)),
	}
	if title, ok, err := d.Setting(db.SettingTitle); err != nil {
		return nil, err
	} else if ok {
		decl.Title = title
	}
	if total, ok, err := d.IntSetting(db.SettingBudget); err != nil {
		return nil, err
	} else if ok {
		decl.Budget = total
	}

	for _, c := range dbCards {
		kind, err := ParseKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", c.ID, err)
		}
		interaction, err := ParseInteraction(c.Interaction)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", c.ID, err)
		}
		var zoomSize float64
		if c.ZoomSize != nil {
			zoomSize = *c.ZoomSize
		}
		decl.Cards = append(decl.Cards, CardDecl{
			Key:             c.ID,
			Title:           c.Title,
			Kind:            kind,
			Position:        transition.Vec3{X: c.PosX, Y: c.PosY, Z: c.PosZ},
			ZoomOffset:      transition.Vec3{X: c.ZoomOffsetX, Y: c.ZoomOffsetY},
			ZoomSize:        zoomSize,
			CostsBudget:     c.CostsBudget,
			InitiallyOpen:   c.InitiallyOpen,
			Interaction:     interaction,
			SpecialRotation: c.SpecialRotation,
			Reserve:         c.Reserve,
		})
	}

	for _, e := range dbDeps {
		decl.Deps = append(decl.Deps, DepDecl{
			Source: e.SourceID,
			Target: e.TargetID,
			Type:   DepType(e.Type),
		})
	}
	return decl, nil
}

// Save writes a declaration into the database, replacing cards with the same keys
func Save(d *db.DB, decl *Declaration) error {
	if decl.Title != "" {
		if err := d.SetSetting(db.SettingTitle, decl.Title); err != nil {
			return err
		}
	}
	if err := d.SetSetting(db.SettingBudget, fmt.Sprint(decl.Budget)); err != nil {
		return err
	}
	for i, c := range decl.Cards {
		row := db.Card{
			ID:              c.Key,
			Title:           c.Title,
			Kind:            c.Kind.String(),
			PosX:            c.Position.X,
			PosY:            c.Position.Y,
			PosZ:            c.Position.Z,
			ZoomOffsetX:     c.ZoomOffset.X,
			ZoomOffsetY:     c.ZoomOffset.Y,
			CostsBudget:     c.CostsBudget,
			InitiallyOpen:   c.InitiallyOpen,
			Interaction:     c.Interaction.String(),
			SpecialRotation: c.SpecialRotation,
			Reserve:         c.Reserve,
			SortOrder:       i,
		}
		if c.ZoomSize > 0 {
			size := c.ZoomSize
			row.ZoomSize = &size
		}
		if err := d.UpsertCard(row); err != nil {
			return err
		}
	}
	for _, e := range decl.Deps {
		if !e.Type.Valid() {
			return fmt.Errorf("unknown dependency type %q (%s -> %s)", e.Type, e.Source, e.Target)
		}
		if err := d.AddDep(db.Dep{SourceID: e.Source, TargetID: e.Target, Type: string(e.Type)}); err != nil {
			return err
		}
	}
	return nil
}
