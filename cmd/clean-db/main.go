// Command-line tool to clean the database by dropping every table.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
	"github.com/lib/pq"

	"jobboard-backend/internal/database"
)

const (
	postgresTables = `SELECT tablename FROM pg_tables WHERE schemaname = 'public'`
	sqliteTables   = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
)

func main() {
	var cfg database.DBConfig
	if err := envconfig.Process("DB", &cfg); err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}

	fmt.Printf("⚠️ WARNING: This command will DROP ALL TABLES of your %s database.\n", cfg.Driver)
	fmt.Println("This action is irreversible. Do you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	input = strings.TrimSpace(strings.ToLower(input))

	if input != "yes" {
		fmt.Println("Operation cancelled.")
		return
	}

	db, err := database.NewDBInstance(&cfg)
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}
	defer db.Close()

	listQuery := postgresTables
	if cfg.Driver == database.DriverSQLite {
		listQuery = sqliteTables
	}

	var tables []string
	if err := db.DB.Raw(listQuery).Scan(&tables).Error; err != nil {
		log.Fatalf("failed to list tables: %v", err)
	}

	// applications reference users and jobs, sqlite has no CASCADE on drop
	if cfg.Driver == database.DriverSQLite {
		if err := db.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
			log.Fatalf("failed to disable foreign keys: %v", err)
		}
	}

	for _, table := range tables {
		stmt := "DROP TABLE IF EXISTS " + pq.QuoteIdentifier(table)
		if cfg.Driver != database.DriverSQLite {
			stmt += " CASCADE"
		}
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatalf("failed to drop %s: %v", table, err)
		}
	}

	fmt.Printf("✅ %d tables dropped successfully.\n", len(tables))
}
