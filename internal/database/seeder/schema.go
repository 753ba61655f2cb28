package seeder

import (
	"context"
	"fmt"
	"strings"

	"skill-match/internal/database"
)

// requireColumns fails when table lacks any of columns, which means the
// migrations have not been applied yet.
func requireColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if table == "" || len(columns) == 0 {
		return fmt.Errorf("require columns: empty table or column list")
	}

	rows, err := db.Query(ctx,
		`SELECT c FROM unnest($2::text[]) AS c
		 WHERE c NOT IN (
			SELECT column_name FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1
		 )`,
		table, columns,
	)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	var missing []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		missing = append(missing, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %s; run migrations first", table, strings.Join(missing, ", "))
	}
	return nil
}
