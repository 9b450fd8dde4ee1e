package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"delivery-optimizer/internal/adapters/repositories"
	"delivery-optimizer/internal/config"
	"delivery-optimizer/internal/platform/db"
	"delivery-optimizer/internal/ports"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool maintains the optimizer database outside the serving path.
//
//	dbtool init                       create tables and indexes
//	dbtool flush                      clear the geocode and route caches
//	dbtool history <session> [limit]  print recorded queries for a session
//
// The database is selected the same way the server selects it
// (CACHE_DRIVER with DB_PATH or DATABASE_URL).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	cmd := "init"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "init":
		if err := initSchema(cfg, conn); err != nil {
			log.Fatal(err)
		}
		log.Println("Schema ready.")
	case "flush":
		if err := repositories.FlushCaches(conn); err != nil {
			log.Fatal(err)
		}
		log.Println("Caches cleared.")
	case "history":
		if len(os.Args) < 3 {
			log.Fatal("usage: dbtool history <session-id> [limit]")
		}
		limit := 20
		if len(os.Args) > 3 {
			n, err := strconv.Atoi(os.Args[3])
			if err != nil || n < 1 {
				log.Fatalf("limit must be a positive integer, got %q", os.Args[3])
			}
			limit = n
		}
		if err := printHistory(cfg, conn, os.Args[2], limit); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("unknown command %q (want init, flush or history)", cmd)
	}
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	if cfg.CacheDriver == "postgres" {
		return db.OpenPostgres(cfg.DatabaseURL)
	}
	return db.OpenSQLite(cfg.DBPath)
}

func initSchema(cfg *config.Config, conn *sql.DB) error {
	if cfg.CacheDriver == "postgres" {
		return repositories.InitPostgresSchema(conn)
	}
	return repositories.InitSchema(conn)
}

func printHistory(cfg *config.Config, conn *sql.DB, sessionID string, limit int) error {
	var repo ports.HistoryRepository
	if cfg.CacheDriver == "postgres" {
		repo = repositories.NewSQLHistoryRepository(conn)
	} else {
		repo = repositories.NewSqliteHistoryRepository(conn)
	}

	records, err := repo.ListBySession(context.Background(), sessionID, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("No recorded queries for session %s\n", sessionID)
		return nil
	}

	for _, rec := range records {
		fmt.Printf("#%d  %s  [%s]\n  Q: %s\n  A: %s\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Kind, rec.Query, rec.Answer)
	}
	return nil
}
