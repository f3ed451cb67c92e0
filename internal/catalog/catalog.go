package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/adeutils/sdbtool/internal/setupdb"
)

// Catalog is a SQLite-backed index of runs from setup database files.
type Catalog struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
}

// Run is one indexed history entry.
type Run struct {
	File               string   `json:"file"`
	Name               string   `json:"name"`
	Timestamp          string   `json:"timestamp"`
	ResultsName        string   `json:"resultsname"`
	SimResults         string   `json:"simresults,omitempty"`
	RawDataDelStrategy string   `json:"rawdatadelstrategy"`
	NetlistDelStrategy string   `json:"netlistdelstrategy,omitempty"`
	SimDir             string   `json:"simdir,omitempty"`
	GenDatasheet       string   `json:"gendatasheet,omitempty"`
	Tests              []string `json:"tests"`
}

// Stats summarizes the catalog contents.
type Stats struct {
	Files  int `json:"files"`
	Runs   int `json:"runs"`
	Tests  int `json:"tests"`  // total tests across indexed files
	Vars   int `json:"vars"`   // total variables across indexed files
	Latest struct {
		File string `json:"file,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"latest"`
}

// Open opens (or creates) the catalog at dbPath.
func Open(dbPath string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Catalog{db: db, dbPath: dbPath}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Index records every history entry of db under the given file path,
// replacing whatever the catalog previously held for that path. It
// returns the number of runs indexed.
func (c *Catalog) Index(ctx context.Context, path string, db *setupdb.SetupDatabase) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve path: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace the file row; cascading delete clears its old runs.
	if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, abs); err != nil {
		return 0, fmt.Errorf("failed to clear previous index: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO files (path, version, test_count, var_count, corner_count, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		abs, db.Version,
		len(db.Active.Tests.Entries),
		len(db.Active.Vars.Entries),
		len(db.Active.Corners.Entries),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to insert file: %w", err)
	}
	fileID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get file id: %w", err)
	}

	count := 0
	for i := range db.History.Entries {
		e := &db.History.Entries[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO runs (file_id, name, timestamp, resultsname, simresults,
			                   rawdatadelstrategy, netlistdelstrategy, simdir,
			                   gendatasheet, tests)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fileID, e.Name, e.Timestamp, e.ResultsName, e.SimResults,
			e.RawDataDelStrategy, e.NetlistDelStrategy, e.SimDir,
			string(e.GenDatasheet), strings.Join(e.Tests, ","))
		if err != nil {
			return 0, fmt.Errorf("failed to insert run %s: %w", e.Name, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit index: %w", err)
	}
	return count, nil
}

// Filter narrows a Runs listing. Zero values match everything.
type Filter struct {
	File string // exact file path
	Name string // run name substring
	Test string // test name the run covers
}

// Runs lists indexed runs matching the filter, newest file first, in
// document order within a file.
func (c *Catalog) Runs(ctx context.Context, filter Filter) ([]Run, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := `SELECT f.path, r.name, r.timestamp, r.resultsname, r.simresults,
	                 r.rawdatadelstrategy, r.netlistdelstrategy, r.simdir,
	                 r.gendatasheet, r.tests
	          FROM runs r JOIN files f ON f.id = r.file_id`
	var conds []string
	var args []interface{}

	if filter.File != "" {
		abs, err := filepath.Abs(filter.File)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
		conds = append(conds, "f.path = ?")
		args = append(args, abs)
	}
	if filter.Name != "" {
		conds = append(conds, "r.name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Test != "" {
		conds = append(conds, "(',' || r.tests || ',') LIKE ?")
		args = append(args, "%,"+filter.Test+",%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY f.indexed_at DESC, r.id ASC"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var tests string
		if err := rows.Scan(&r.File, &r.Name, &r.Timestamp, &r.ResultsName,
			&r.SimResults, &r.RawDataDelStrategy, &r.NetlistDelStrategy,
			&r.SimDir, &r.GenDatasheet, &tests); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if tests != "" {
			r.Tests = strings.Split(tests, ",")
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Stats returns counts over the whole catalog.
func (c *Catalog) Stats(ctx context.Context) (*Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var s Stats
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(test_count), 0),
		        COALESCE(SUM(var_count), 0)
		 FROM files`).Scan(&s.Files, &s.Tests, &s.Vars)
	if err != nil {
		return nil, fmt.Errorf("failed to count files: %w", err)
	}

	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&s.Runs); err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	if s.Runs > 0 {
		err := c.db.QueryRowContext(ctx,
			`SELECT f.path, r.name FROM runs r JOIN files f ON f.id = r.file_id
			 ORDER BY f.indexed_at DESC, r.id DESC LIMIT 1`).
			Scan(&s.Latest.File, &s.Latest.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to find latest run: %w", err)
		}
	}

	return &s, nil
}

// Check runs the catalog's integrity checks.
func (c *Catalog) Check(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return ValidateIntegrity(ctx, c.db)
}
