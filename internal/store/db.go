package store

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Open opens the SQLite library file, creating its directory on first run.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrapf(err, "create data directory %s", dir)
		}
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping sqlite %s", path)
	}
	return db, nil
}

// MigrateFS applies every pending migration found in dir of migrationsFS.
func MigrateFS(db *sql.DB, migrationsFS fs.FS, dir string) error {
	return RunMigrationFS(db, migrationsFS, dir, "up")
}

// RunMigration runs one goose command (up, down, reset, status, version)
// against dir. Callers using an embedded FS set it with goose.SetBaseFS or
// go through MigrateFS.
func RunMigration(db *sql.DB, dir, command string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return errors.Wrap(err, "migrate")
	}

	var err error
	switch command {
	case "up", "":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "reset":
		err = goose.Reset(db, dir)
	case "status":
		err = goose.Status(db, dir)
	case "version":
		err = goose.Version(db, dir)
	default:
		return errors.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return errors.Wrapf(err, "goose %s", command)
	}
	return nil
}

// RunMigrationFS is RunMigration over an embedded migration set.
func RunMigrationFS(db *sql.DB, migrationsFS fs.FS, dir, command string) error {
	goose.SetBaseFS(migrationsFS)
	defer func() {
		goose.SetBaseFS(nil)
	}()
	return RunMigration(db, dir, command)
}

// SetMigrationLogger routes goose output to logger.
func SetMigrationLogger(logger goose.Logger) {
	goose.SetLogger(logger)
}
