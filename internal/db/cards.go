package db

import (
	"database/sql"
	"errors"
	"fmt"
)

const cardColumns = `id, title, kind, pos_x, pos_y, pos_z, zoom_offset_x, zoom_offset_y,
	zoom_size, costs_budget, initially_open, interaction, special_rotation,
	reserve, sort_order`

// scanCard scans a row into a Card. The row must have all 15 columns in standard order.
func scanCard(scanner interface{ Scan(dest ...any) error }) (Card, error) {
	var c Card
	err := scanner.Scan(
		&c.ID, &c.Title, &c.Kind, &c.PosX, &c.PosY, &c.PosZ,
		&c.ZoomOffsetX, &c.ZoomOffsetY, &c.ZoomSize, &c.CostsBudget,
		&c.InitiallyOpen, &c.Interaction, &c.SpecialRotation, &c.Reserve,
		&c.SortOrder,
	)
	return c, err
}

// AllCards returns all cards in board order
func (d *DB) AllCards() ([]Card, error) {
	rows, err := d.conn.Query(`SELECT ` + cardColumns + ` FROM cards ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetCard returns a single card by ID, or nil if not found
func (d *DB) GetCard(id string) (*Card, error) {
	row := d.conn.QueryRow(`SELECT `+cardColumns+` FROM cards WHERE id = ?`, id)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertCard inserts or replaces a card
func (d *DB) UpsertCard(c Card) error {
	if c.Kind == "" {
		c.Kind = "card"
	}
	if c.Interaction == "" {
		c.Interaction = "active"
	}
	_, err := d.conn.Exec(`
		INSERT OR REPLACE INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID, c.Title, c.Kind, c.PosX, c.PosY, c.PosZ, c.ZoomOffsetX, c.ZoomOffsetY,
		c.ZoomSize, c.CostsBudget, c.InitiallyOpen, c.Interaction, c.SpecialRotation,
		c.Reserve, c.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("saving card %s: %w", c.ID, err)
	}
	return nil
}

// DeleteCard removes a card and, through the foreign keys, its deps
func (d *DB) DeleteCard(id string) error {
	_, err := d.conn.Exec(`DELETE FROM cards WHERE id = ?`, id)
	return err
}
