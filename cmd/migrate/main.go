package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"axiapac.com/timeclock/app"
	"axiapac.com/timeclock/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml")
	flag.Parse()
	_ = godotenv.Load()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	a, err := app.New(context.Background(), *configPath)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer a.Close()

	sqlDB, err := a.DB.DB()
	if err != nil {
		log.Fatalf("failed to get database handle: %v", err)
	}
	m, err := store.NewMigrator(sqlDB, a.Config.Database.Driver)
	if err != nil {
		log.Fatalf("%v", err)
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
	default:
		log.Fatalf("unknown command %q, expected up, down or version", command)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatalf("failed to read version: %v", err)
	}
	fmt.Printf("[INFO] version %d (dirty: %t)\n", version, dirty)
}
