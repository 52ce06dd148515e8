package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

// Applies scripts/init_db.sql to the configured database.
func main() {
	dsn := os.Getenv("POSTGRES_DSN")
	if len(os.Args) > 1 {
		dsn = os.Args[1]
	}
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set and no DSN argument given")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	sqlContent, err := os.ReadFile("scripts/init_db.sql")
	if err != nil {
		log.Fatalf("failed to read init_db.sql: %v", err)
	}

	if _, err := db.Exec(string(sqlContent)); err != nil {
		log.Fatalf("failed to execute schema script: %v", err)
	}

	for _, table := range []string{"users", "organisations", "organisation_users"} {
		var count int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			log.Fatalf("failed to verify table %s: %v", table, err)
		}
		fmt.Printf("table %s ready (%d records)\n", table, count)
	}

	fmt.Println("database setup completed")
}
