// Package sqliterepo is the SQLite-backed credentials.Repo. Username
// uniqueness lives in the schema, so concurrent registrations of the same
// name resolve inside the database: the loser's INSERT fails with a
// constraint violation that surfaces as credentials.ErrUsernameTaken.
package sqliterepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alphaalpha-app/fairshare-gateway/credentials"
	errs "github.com/alphaalpha-app/fairshare-gateway/internal/errors"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS credentials (
	id                TEXT PRIMARY KEY,
	username          TEXT NOT NULL UNIQUE,
	password_verifier TEXT NOT NULL,
	created_at        INTEGER NOT NULL
);`

var _ credentials.Repo = (*Repo)(nil)

type Repo struct {
	db *sql.DB
}

// Open opens (or creates) the credential database at path and ensures the
// schema exists. WAL mode keeps concurrent reads cheap on the edge host.
func Open(path string) (*Repo, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errs.Wrapf(err, "[sqliterepo.Open] failed to open database %q", path)
	}
	// Single writer: sidesteps SQLITE_BUSY under concurrent registrations.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errs.Wrapf(err, "[sqliterepo.Open] failed to initialise schema")
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

// FindByUsername matches the username exactly; the column uses the default
// binary collation, so lookups are case-sensitive.
func (r *Repo) FindByUsername(ctx context.Context, username string) (*credentials.Credential, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_verifier, created_at FROM credentials WHERE username = ?`,
		username,
	)

	var credential credentials.Credential
	var createdAt int64
	err := row.Scan(&credential.ID, &credential.Username, &credential.Verifier, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, credentials.ErrNotFound
	}
	if err != nil {
		return nil, errs.Wrapf(err, "[sqliterepo.FindByUsername] query failed")
	}
	credential.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &credential, nil
}

func (r *Repo) Insert(ctx context.Context, credential *credentials.Credential) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credentials (id, username, password_verifier, created_at) VALUES (?, ?, ?, ?)`,
		credential.ID, credential.Username, credential.Verifier, credential.CreatedAt.UnixMilli(),
	)
	if isUniqueViolation(err) {
		return credentials.ErrUsernameTaken
	}
	if err != nil {
		return errs.Wrapf(err, "[sqliterepo.Insert] insert failed")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
