package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"revealboard/internal/board"
	"revealboard/internal/config"
	"revealboard/internal/db"
)

const dbFileName = ".revealboard.db"

var (
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "revealboard",
	Short: "Card-reveal board sessions: lint, simulate and play boards",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to "+dbFileName+" database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log session diagnostics to stderr")
}

// DiscoverDB finds the database path using priority: env > flag > walk-up > XDG fallback
func DiscoverDB() (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("REVEALBOARD_DB"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	// 2. CLI flag
	if dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}
		return "", fmt.Errorf("database not found at --db path: %s", dbPath)
	}

	// 3. Walk up from CWD
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, dbFileName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 4. XDG fallback
	if xdgPath, err := xdgDBPath(); err == nil {
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath, nil
		}
	}

	return "", fmt.Errorf("no %s found (set REVEALBOARD_DB, use --db, run from a directory containing %s, or run `revealboard init`)", dbFileName, dbFileName)
}

func xdgDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "revealboard", "revealboard.db"), nil
}

// OpenDatabase discovers and opens the database
func OpenDatabase() (*db.DB, error) {
	path, err := DiscoverDB()
	if err != nil {
		return nil, err
	}
	d, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// loadBoard reads the environment configuration and the stored board
func loadBoard() (config.Config, *board.Declaration, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	d, err := OpenDatabase()
	if err != nil {
		return config.Config{}, nil, err
	}
	defer d.Close()

	decl, err := board.FromDB(d)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading board: %w", err)
	}
	if len(decl.Cards) == 0 {
		return config.Config{}, nil, fmt.Errorf("board in %s has no cards", d.Path)
	}
	return cfg, decl, nil
}

// newLogger returns a stderr logger with the given prefix when --verbose is set
func newLogger(prefix string) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "["+prefix+"] ", 0)
}

// ResolveCard finds a card by exact key, key prefix, or title substring.
func ResolveCard(decl *board.Declaration, reference string) (*board.CardDecl, error) {
	// 1. Exact key match
	for i := range decl.Cards {
		if decl.Cards[i].Key == reference {
			return &decl.Cards[i], nil
		}
	}

	// 2. Key prefix, then 3. case-insensitive title match
	matchers := []func(c board.CardDecl) bool{
		func(c board.CardDecl) bool { return strings.HasPrefix(c.Key, reference) },
		func(c board.CardDecl) bool {
			return strings.Contains(strings.ToLower(c.Title), strings.ToLower(reference))
		},
	}
	for _, match := range matchers {
		var found []*board.CardDecl
		for i := range decl.Cards {
			if match(decl.Cards[i]) {
				found = append(found, &decl.Cards[i])
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			lines := make([]string, len(found))
			for i, c := range found {
				lines[i] = fmt.Sprintf("  %s %s", c.Key, c.Title)
			}
			return nil, fmt.Errorf("ambiguous reference '%s'. %d matches:\n%s\nUse a full card key instead.",
				reference, len(found), strings.Join(lines, "\n"))
		}
	}

	return nil, fmt.Errorf("card not found: %s", reference)
}
