// internal/db/db.go
package db

import (
    "database/sql"
    "fmt"
    "os"

    _ "github.com/lib/pq"
)

// Connect opens the Postgres pool from DB_* environment variables and pings it.
func Connect() (*sql.DB, error) {
    user := os.Getenv("DB_USER")
    pass := os.Getenv("DB_PASSWORD")
    host := os.Getenv("DB_HOST")
    port := os.Getenv("DB_PORT")
    name := os.Getenv("DB_NAME")

    dsn := fmt.Sprintf(
        "postgres://%s:%s@%s:%s/%s?sslmode=disable",
        user, pass, host, port, name,
    )

    conn, err := sql.Open("postgres", dsn)
    if err != nil {
        return nil, fmt.Errorf("failed to connect to DB: %w", err)
    }

    if err = conn.Ping(); err != nil {
        return nil, fmt.Errorf("failed to ping DB: %w", err)
    }

    return conn, nil
}
