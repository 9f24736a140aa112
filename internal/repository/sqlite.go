package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"spotfinder/internal/models"
	"spotfinder/internal/seed"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// CurrentSchemaVersion is stored in PRAGMA user_version. A database carrying
// any other non-zero version is dropped and rebuilt from the seed dataset.
const CurrentSchemaVersion = 1

// SuggestionLimit caps the number of addresses returned by SearchPrefix.
const SuggestionLimit = 10

const tableName = "location"

// ErrStorage marks failures of the underlying storage engine. Not-found and
// duplicate outcomes are never reported through it.
var ErrStorage = errors.New("storage failure")

// Options configures Open.
type Options struct {
	// Path of the SQLite database file.
	Path string
	// Seed is loaded on first creation. Nil means seed.Default().
	Seed *seed.Dataset
	// SchemaVersion defaults to CurrentSchemaVersion.
	SchemaVersion int
}

// Repository implements the location store on top of SQLite
type Repository struct {
	db *sql.DB
}

// Open creates or opens the database at opts.Path and makes sure the
// location table exists and has been seeded exactly once.
func Open(ctx context.Context, opts Options) (*Repository, error) {
	if opts.SchemaVersion == 0 {
		opts.SchemaVersion = CurrentSchemaVersion
	}
	if opts.Seed == nil {
		ds, err := seed.Default()
		if err != nil {
			return nil, fmt.Errorf("repository: failed to load seed dataset: %w", err)
		}
		opts.Seed = ds
	}

	if opts.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, storageError("failed to create database directory", err)
		}
	}

	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, storageError("failed to open database", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, storageError("failed to connect to database", err)
	}

	// SQLite allows a single writer; one connection also keeps :memory:
	// databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	r := &Repository{db: db}
	if err := r.initialize(ctx, opts.SchemaVersion, opts.Seed); err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Ping reports whether the database is still reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return storageError("failed to ping database", err)
	}
	return nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return storageError(fmt.Sprintf("failed to execute %q", pragma), err)
		}
	}
	return nil
}

// initialize creates and seeds the table on a new database, and rebuilds it
// when the stored schema version differs from the requested one.
func (r *Repository) initialize(ctx context.Context, version int, ds *seed.Dataset) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("failed to begin schema transaction", err)
	}
	defer tx.Rollback()

	var stored int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&stored); err != nil {
		return storageError("failed to read user_version", err)
	}

	switch {
	case stored == version:
		return nil
	case stored != 0:
		discarded, err := countTable(ctx, tx)
		if err != nil {
			return err
		}
		log.Warn().
			Int("from_version", stored).
			Int("to_version", version).
			Int("discarded_records", discarded).
			Msg("schema version changed, rebuilding location table")

		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+tableName); err != nil {
			return storageError("failed to drop location table", err)
		}
	}

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return storageError("failed to create location table", err)
	}

	if err := insertSeed(ctx, tx, ds); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return storageError("failed to set user_version", err)
	}

	if err := tx.Commit(); err != nil {
		return storageError("failed to commit schema transaction", err)
	}

	log.Info().
		Int("seed_version", ds.Version).
		Int("locations", len(ds.Locations)).
		Msg("seeded location table")
	return nil
}

func insertSeed(ctx context.Context, tx *sql.Tx, ds *seed.Dataset) error {
	query, _, err := insertQuery("", 0, 0).ToSql()
	if err != nil {
		return fmt.Errorf("repository: failed to build seed insert: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return storageError("failed to prepare seed insert", err)
	}
	defer stmt.Close()

	for _, e := range ds.Locations {
		if _, err := stmt.ExecContext(ctx, NormalizeAddress(e.Name), e.Latitude, e.Longitude); err != nil {
			return storageError(fmt.Sprintf("failed to seed %q", e.Name), err)
		}
	}
	return nil
}

func countTable(ctx context.Context, tx *sql.Tx) (int, error) {
	var exists int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", tableName,
	).Scan(&exists)
	if err != nil {
		return 0, storageError("failed to inspect schema", err)
	}
	if exists == 0 {
		return 0, nil
	}

	var n int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+tableName).Scan(&n); err != nil {
		return 0, storageError("failed to count locations", err)
	}
	return n, nil
}

func insertQuery(address string, lat, lng float64) squirrel.InsertBuilder {
	return squirrel.Insert(tableName).
		Columns("address", "latitude", "longitude").
		Values(address, lat, lng).
		Suffix("ON CONFLICT(address) DO NOTHING")
}

// Insert stores a new location under its normalized address. It returns false
// when that address is already taken.
func (r *Repository) Insert(ctx context.Context, address string, lat, lng float64) (bool, error) {
	query, args, err := insertQuery(NormalizeAddress(address), lat, lng).ToSql()
	if err != nil {
		return false, fmt.Errorf("repository: failed to build insert: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, storageError("failed to insert location", err)
	}
	return affected(res)
}

// FindByAddress returns the location stored under the normalized address, or
// nil when there is none.
func (r *Repository) FindByAddress(ctx context.Context, address string) (*models.Location, error) {
	query, args, err := squirrel.Select("id", "address", "latitude", "longitude").
		From(tableName).
		Where(squirrel.Eq{"address": NormalizeAddress(address)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build lookup: %w", err)
	}

	var loc models.Location
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&loc.ID,
		&loc.Address,
		&loc.Latitude,
		&loc.Longitude,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("failed to look up location", err)
	}

	return &loc, nil
}

// Update overwrites the coordinates of an existing location. It never creates
// a record and returns false when the address is unknown.
func (r *Repository) Update(ctx context.Context, address string, lat, lng float64) (bool, error) {
	query, args, err := squirrel.Update(tableName).
		Set("latitude", lat).
		Set("longitude", lng).
		Where(squirrel.Eq{"address": NormalizeAddress(address)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("repository: failed to build update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, storageError("failed to update location", err)
	}
	return affected(res)
}

// Delete removes the location stored under the normalized address.
func (r *Repository) Delete(ctx context.Context, address string) (bool, error) {
	query, args, err := squirrel.Delete(tableName).
		Where(squirrel.Eq{"address": NormalizeAddress(address)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("repository: failed to build delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, storageError("failed to delete location", err)
	}
	return affected(res)
}

// SearchPrefix returns up to SuggestionLimit stored addresses starting with
// prefix, in lexicographic order. An empty prefix matches nothing.
func (r *Repository) SearchPrefix(ctx context.Context, prefix string) ([]string, error) {
	addresses := []string{}

	p := normalizePrefix(prefix)
	if p == "" {
		return addresses, nil
	}

	query, args, err := squirrel.Select("address").
		From(tableName).
		Where(`address LIKE ? ESCAPE '\'`, escapeLike(p)+"%").
		OrderBy("address").
		Limit(SuggestionLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to build prefix search: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("failed to execute prefix search", err)
	}
	defer rows.Close()

	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, storageError("failed to scan address", err)
		}
		addresses = append(addresses, address)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("error iterating rows", err)
	}

	return addresses, nil
}

// Count returns the number of stored locations.
func (r *Repository) Count(ctx context.Context) (int, error) {
	query, args, err := squirrel.Select("COUNT(*)").From(tableName).ToSql()
	if err != nil {
		return 0, fmt.Errorf("repository: failed to build count: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, storageError("failed to count locations", err)
	}
	return n, nil
}

// NormalizeAddress trims surrounding whitespace and lowercases an address.
// Stored addresses are always in this form.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Trailing whitespace stays part of a prefix.
func normalizePrefix(prefix string) string {
	return strings.ToLower(strings.TrimLeftFunc(prefix, unicode.IsSpace))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageError("failed to read affected rows", err)
	}
	return n > 0, nil
}

func storageError(msg string, err error) error {
	return fmt.Errorf("repository: %s: %w: %w", msg, ErrStorage, err)
}
