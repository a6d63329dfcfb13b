package db

import (
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var conn *sqlx.DB

func InitDB() *sqlx.DB {
	dsn := os.Getenv("AMERICANO_DB")
	if dsn == "" {
		dsn = "americano.db?_journal_mode=WAL"
	}

	database, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		log.Fatalln("Failed to connect to DB:", err)
	}

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		log.Fatal(err)
	}

	conn = database
	log.Println("Database connected.")
	return database
}

func GetDB() *sqlx.DB {
	return conn
}

// RunMigrations applies everything under migrations/ that has not run yet.
func RunMigrations(database *sqlx.DB) error {
	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
