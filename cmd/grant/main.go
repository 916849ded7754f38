package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"axiapac.com/timeclock/app"
	"axiapac.com/timeclock/report"
	"axiapac.com/timeclock/utils"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml")
	date := flag.String("date", "", "credit date, yyyy-mm-dd (default today)")
	grantOT := flag.Bool("ot", false, "also grant the OT meal to everyone present")
	roster := flag.String("roster", "", "csv or xlsx OT roster; grants OT meals to the listed codes only")
	workbook := flag.String("export", "", "write the credit workbook to this directory afterwards")
	flag.Parse()
	_ = godotenv.Load()

	ctx := context.Background()
	a, err := app.New(ctx, *configPath)
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer a.Close()

	day := time.Now().In(a.Location)
	if *date != "" {
		if day, err = utils.ParseDateIn(*date, a.Location); err != nil {
			log.Fatalf("invalid -date: %v", err)
		}
	}

	var result any
	if *roster != "" {
		codes, err := readRoster(*roster)
		if err != nil {
			log.Fatalf("failed to read roster: %v", err)
		}
		result, err = a.Granter.GrantOTForCodes(ctx, day, codes)
		if err != nil {
			log.Fatalf("grant failed: %v", err)
		}
	} else {
		result, err = a.Granter.GrantForDate(ctx, day, *grantOT)
		if err != nil {
			log.Fatalf("grant failed: %v", err)
		}
	}
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))

	if *workbook != "" {
		if err := export(ctx, a, day, *workbook); err != nil {
			log.Fatalf("export failed: %v", err)
		}
	}
}

func readRoster(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return report.ParseOTRoster(f, filepath.Base(name))
}

func export(ctx context.Context, a *app.App, day time.Time, dir string) error {
	credits, err := a.Granter.Credits(ctx, day)
	if err != nil {
		return err
	}
	key := day.Format(utils.DateLayout)
	buf, err := report.BuildCreditWorkbook(key, credits)
	if err != nil {
		return err
	}
	name := filepath.Join(dir, report.WorkbookFilename(key))
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Printf("[INFO] workbook written to %s\n", name)
	return nil
}
