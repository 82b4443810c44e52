package lines

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Connect opens a Postgres connection through the pgx stdlib driver and
// verifies it with a ping. The caller owns the returned connection; Load
// accepts any *sql.DB, so using this helper is optional.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

// ConnectEnv connects using the DB_NAME, DB_USER, DB_PASSWORD and DB_HOST
// environment variables.
func ConnectEnv(ctx context.Context) (*sql.DB, error) {
	dsn := fmt.Sprintf("dbname=%s user=%s password=%s host=%s",
		os.Getenv("DB_NAME"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
	)
	return Connect(ctx, dsn)
}
