package db

import "fmt"

// scanDep scans a row into a Dep
func scanDep(scanner interface{ Scan(dest ...any) error }) (Dep, error) {
	var e Dep
	err := scanner.Scan(&e.SourceID, &e.TargetID, &e.Type)
	return e, err
}

// AllDeps returns all dependency edges
func (d *DB) AllDeps() ([]Dep, error) {
	rows, err := d.conn.Query(`SELECT source_id, target_id, type FROM deps ORDER BY source_id, type, target_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []Dep
	for rows.Next() {
		e, err := scanDep(rows)
		if err != nil {
			return nil, err
		}
		deps = append(deps, e)
	}
	return deps, rows.Err()
}

// GetDepsForCard returns all deps where the given card is source OR target.
func (d *DB) GetDepsForCard(cardID string) ([]Dep, error) {
	rows, err := d.conn.Query(`
		SELECT source_id, target_id, type FROM deps
		WHERE source_id = ? OR target_id = ?
		ORDER BY source_id, type, target_id
	`, cardID, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []Dep
	for rows.Next() {
		e, err := scanDep(rows)
		if err != nil {
			return nil, err
		}
		deps = append(deps, e)
	}
	return deps, rows.Err()
}

// AddDep records a dependency; adding an existing one is a no-op
func (d *DB) AddDep(e Dep) error {
	_, err := d.conn.Exec(
		`INSERT OR IGNORE INTO deps (source_id, target_id, type) VALUES (?, ?, ?)`,
		e.SourceID, e.TargetID, e.Type,
	)
	if err != nil {
		return fmt.Errorf("adding %s dep %s -> %s: %w", e.Type, e.SourceID, e.TargetID, err)
	}
	return nil
}
