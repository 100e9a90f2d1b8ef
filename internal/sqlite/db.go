package sqlite

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to an in-memory database is a separate database.
	if isMemoryDSN(dataSourceName) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// isMemoryDSN reports whether dsn names a private in-memory database:
// ":memory:", "file::memory:" or a URI with mode=memory.
func isMemoryDSN(dsn string) bool {
	if dsn == "" || dsn == ":memory:" {
		return true
	}
	if !strings.HasPrefix(dsn, "file:") {
		return false
	}
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == ":memory:" {
		return true
	}
	values, err := url.ParseQuery(query)
	return err == nil && values.Get("mode") == "memory"
}

// RunMigrations creates the dataset schema
func (db *DB) RunMigrations() error {
	migration := `
-- Projects in generation order
CREATE TABLE IF NOT EXISTS projects (
    seq INTEGER PRIMARY KEY,
    project_id TEXT NOT NULL UNIQUE,
    project_name TEXT NOT NULL,
    project_name_key TEXT NOT NULL,
    team_name TEXT NOT NULL,
    team_name_key TEXT NOT NULL,
    template_count INTEGER NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('active', 'maintenance', 'deprecated', 'archived')),
    repository_url TEXT NOT NULL,
    created_date TEXT NOT NULL,
    last_updated TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_project_name ON projects(project_name_key);
CREATE INDEX IF NOT EXISTS idx_team_name ON projects(team_name_key);
CREATE INDEX IF NOT EXISTS idx_status ON projects(status);

-- Templates used by each project, positionally paired with their versions
CREATE TABLE IF NOT EXISTS project_templates (
    project_seq INTEGER NOT NULL,
    position INTEGER NOT NULL,
    template TEXT NOT NULL,
    template_key TEXT NOT NULL,
    version TEXT NOT NULL,
    PRIMARY KEY (project_seq, position),
    FOREIGN KEY (project_seq) REFERENCES projects(seq)
);
CREATE INDEX IF NOT EXISTS idx_template ON project_templates(template_key);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
