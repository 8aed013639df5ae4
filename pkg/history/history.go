// Package history persists successive ProjectReport runs against one
// project directory so the CLI's "history" subcommand can list or
// re-inspect past analyses. It lives entirely outside the engine: the
// engine itself never touches a database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/sqlite"

	"github.com/devtriage/pyscope/pkg/models"
	"github.com/devtriage/pyscope/pkg/report"
)

// DefaultDBPath resolves the history database location for root: an
// existing "pyscope.db" in root takes precedence, otherwise one is
// created under a ".pyscope" directory alongside it.
func DefaultDBPath(root string) (string, error) {
	direct := filepath.Join(root, "pyscope.db")
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	}

	dir := filepath.Join(root, ".pyscope")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create history directory: %w", err)
	}
	return filepath.Join(dir, "pyscope.db"), nil
}

// Store is a sqlite-backed log of past analysis runs.
type Store struct {
	db *sql.DB
}

// Snapshot is one stored analysis run's metadata, without the full
// report body.
type Snapshot struct {
	ID             int64
	ProjectPath    string
	RanAt          time.Time
	FilesAnalyzed  int
	TotalLOC       int
	TotalFunctions int
	TotalSmells    int
	AvgCyclomatic  float64
	AvgCognitive   float64
}

// Open creates or opens the history database at dbPath, running
// migrations as needed.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS project_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_path TEXT NOT NULL,
		ran_at TEXT NOT NULL,
		files_analyzed INTEGER NOT NULL,
		total_loc INTEGER NOT NULL,
		total_functions INTEGER NOT NULL,
		total_smells INTEGER NOT NULL,
		avg_cyclomatic REAL NOT NULL,
		avg_cognitive REAL NOT NULL,
		report_json BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_project_snapshots_path_time
		ON project_snapshots(project_path, ran_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save records one analysis run against projectPath.
func (s *Store) Save(projectPath string, ranAt time.Time, r *models.ProjectReport) (int64, error) {
	blob, err := report.MarshalCompact(r)
	if err != nil {
		return 0, fmt.Errorf("marshal report for history: %w", err)
	}

	res, err := s.db.Exec(
		`INSERT INTO project_snapshots
			(project_path, ran_at, files_analyzed, total_loc, total_functions,
			 total_smells, avg_cyclomatic, avg_cognitive, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		projectPath, ranAt.UTC().Format(time.RFC3339),
		r.FilesAnalyzed, r.TotalLOC, r.TotalFunctions, r.TotalSmells,
		r.AvgCyclomatic, r.AvgCognitive, blob,
	)
	if err != nil {
		return 0, fmt.Errorf("insert history snapshot: %w", err)
	}
	return res.LastInsertId()
}

// List returns snapshot metadata for projectPath, most recent first.
func (s *Store) List(projectPath string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, project_path, ran_at, files_analyzed, total_loc,
		        total_functions, total_smells, avg_cyclomatic, avg_cognitive
		 FROM project_snapshots
		 WHERE project_path = ?
		 ORDER BY ran_at DESC
		 LIMIT ?`,
		projectPath, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ranAt string
		if err := rows.Scan(
			&snap.ID, &snap.ProjectPath, &ranAt, &snap.FilesAnalyzed,
			&snap.TotalLOC, &snap.TotalFunctions, &snap.TotalSmells,
			&snap.AvgCyclomatic, &snap.AvgCognitive,
		); err != nil {
			return nil, fmt.Errorf("scan history snapshot: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, ranAt)
		if err != nil {
			return nil, fmt.Errorf("parse history snapshot timestamp: %w", err)
		}
		snap.RanAt = parsed
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Show returns the full stored ProjectReport for one snapshot ID.
func (s *Store) Show(id int64) (*models.ProjectReport, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT report_json FROM project_snapshots WHERE id = ?`, id,
	).Scan(&blob)
	if err != nil {
		return nil, fmt.Errorf("load history snapshot %d: %w", id, err)
	}
	return report.Unmarshal(blob)
}
