// Package migration applies the versioned SQL schema of the service.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	applog "skill-match/internal/logger"

	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedded embed.FS

// lockKey is the advisory lock held for the duration of a run.
const lockKey int64 = 0x736b6d61

var ErrChecksumMismatch = errors.New("migration checksum mismatch")

// Runner applies versioned SQL files in order. Files are read from Dir when
// set and from the migrations compiled into the binary otherwise.
type Runner struct {
	Dir    string
	Logger *zap.Logger
}

type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	log := applog.OrNop(r.Logger)

	src, err := r.source()
	if err != nil {
		return err
	}
	migs, err := Load(src)
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		log.Info("no migrations found")
		return nil
	}

	// Session level advisory locks belong to one connection, so the whole run
	// stays on a single pinned conn.
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return fmt.Errorf("advisory lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	if _, err := conn.ExecContext(ctx, createSchemaMigrations); err != nil {
		return fmt.Errorf("schema_migrations: %w", err)
	}
	applied, err := appliedChecksums(ctx, conn)
	if err != nil {
		return err
	}

	todo, err := pending(migs, applied)
	if err != nil {
		return err
	}
	if len(todo) == 0 {
		log.Debug("schema up to date", zap.Int("applied", len(applied)))
		return nil
	}

	for _, m := range todo {
		if err := apply(ctx, conn, m); err != nil {
			return err
		}
		log.Info("migration applied", zap.Int64("version", m.Version), zap.String("name", m.Name))
	}
	return nil
}

func (r Runner) source() (fs.FS, error) {
	if strings.TrimSpace(r.Dir) == "" {
		return fs.Sub(embedded, "sql")
	}
	st, err := os.Stat(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("migrations dir: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("migrations dir: %s is not a directory", r.Dir)
	}
	return os.DirFS(r.Dir), nil
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Load reads the migrations at the root of fsys ordered by version. Files not
// named V<version>__<name>.sql are ignored.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	migs := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := fileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		mig, err := readMigration(fsys, e.Name(), m[1], m[2])
		if err != nil {
			return nil, err
		}
		migs = append(migs, mig)
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].Version < migs[j].Version })
	for i := 1; i < len(migs); i++ {
		if migs[i].Version == migs[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s",
				migs[i].Version, migs[i-1].Filename, migs[i].Filename)
		}
	}
	return migs, nil
}

func readMigration(fsys fs.FS, filename, version, name string) (Migration, error) {
	v, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return Migration{}, fmt.Errorf("invalid migration version: %s", filename)
	}
	b, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return Migration{}, err
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return Migration{}, fmt.Errorf("empty migration file: %s", filename)
	}
	sum := sha256.Sum256([]byte(text))
	return Migration{
		Version:  v,
		Name:     name,
		Filename: filename,
		SQL:      text,
		Checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// pending returns the migrations not yet in applied, keeping version order.
// An applied migration whose file changed afterwards is an error.
func pending(migs []Migration, applied map[int64]string) ([]Migration, error) {
	out := make([]Migration, 0, len(migs))
	for _, m := range migs {
		sum, done := applied[m.Version]
		if !done {
			out = append(out, m)
			continue
		}
		if sum != m.Checksum {
			return nil, fmt.Errorf("%w: version=%d file=%s", ErrChecksumMismatch, m.Version, m.Filename)
		}
	}
	return out, nil
}

const createSchemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func appliedChecksums(ctx context.Context, conn *sql.Conn) (map[int64]string, error) {
	rows, err := conn.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var (
			v   int64
			sum string
		)
		if err := rows.Scan(&v, &sum); err != nil {
			return nil, err
		}
		out[v] = sum
	}
	return out, rows.Err()
}

func apply(ctx context.Context, conn *sql.Conn, m Migration) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply %s: %w", m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return fmt.Errorf("record %s: %w", m.Filename, err)
	}
	return tx.Commit()
}
