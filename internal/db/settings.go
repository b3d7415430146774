package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Setting returns a board setting, or "" and false if unset
func (d *DB) Setting(key string) (string, bool, error) {
	var v string
	err := d.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetSetting stores a board setting
func (d *DB) SetSetting(key, value string) error {
	_, err := d.conn.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	if err != nil {
		return fmt.Errorf("saving setting %s: %w", key, err)
	}
	return nil
}

// IntSetting reads a setting as an integer
func (d *DB) IntSetting(key string) (int, bool, error) {
	v, ok, err := d.Setting(key)
	if err != nil || !ok {
		return 0, ok, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("setting %s: %w", key, err)
	}
	return n, true, nil
}
