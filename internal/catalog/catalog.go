// Package catalog is the SQLite-backed field-metadata source. It plays the
// role of the external work-item-tracking service: the cache fetches field
// descriptors from it and the analyzer never touches it directly.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/querytools/wiqlint/internal/fields"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// Catalog provides read/write access to the field metadata database.
// Reads are safe for concurrent use; SQLite is opened in WAL mode.
type Catalog struct {
	db *sql.DB
}

// Open creates or opens a catalog database at the given path.
// Applies required pragmas and the schema; idempotent.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect catalog: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY on concurrent upserts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// FetchFields returns every field descriptor, ordered by reference name so
// snapshots built from the same catalog state are identical. A row whose
// field_type is not a known type name is a data defect and fails the fetch.
func (c *Catalog) FetchFields(ctx context.Context) ([]fields.FieldDescriptor, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, reference_name, field_type
		FROM fields
		ORDER BY reference_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()

	var out []fields.FieldDescriptor
	for rows.Next() {
		var name, ref, typeName string
		if err := rows.Scan(&name, &ref, &typeName); err != nil {
			return nil, fmt.Errorf("scan field row: %w", err)
		}
		ft, ok := fields.ParseFieldType(typeName)
		if !ok {
			return nil, fmt.Errorf("field %s: unknown field type %q", ref, typeName)
		}
		out = append(out, fields.FieldDescriptor{Name: name, ReferenceName: ref, Type: ft})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate field rows: %w", err)
	}
	return out, nil
}

// UpsertField inserts or replaces one field descriptor.
func (c *Catalog) UpsertField(ctx context.Context, d fields.FieldDescriptor) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO fields (reference_name, name, field_type)
		VALUES (?, ?, ?)
		ON CONFLICT(reference_name) DO UPDATE SET
			name = excluded.name,
			field_type = excluded.field_type
	`, d.ReferenceName, d.Name, d.Type.ConfigName())
	if err != nil {
		return fmt.Errorf("upsert field %s: %w", d.ReferenceName, err)
	}
	return nil
}

// Seed inserts the built-in field set into an empty catalog. Existing rows
// are left untouched.
func (c *Catalog) Seed(ctx context.Context) error {
	for _, d := range fields.Builtin() {
		_, err := c.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO fields (reference_name, name, field_type)
			VALUES (?, ?, ?)
		`, d.ReferenceName, d.Name, d.Type.ConfigName())
		if err != nil {
			return fmt.Errorf("seed field %s: %w", d.ReferenceName, err)
		}
	}
	return nil
}
